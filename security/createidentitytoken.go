package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identite is what the authorization gate works from: who is calling and
// with which role claim.
type Identite struct {
	UtilisateurID string `json:"uid"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

type IdentiteClaims struct {
	Identite
	jwt.RegisteredClaims
}

func CreateIdentityToken(identite *Identite, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentiteClaims{
		Identite: *identite,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gestirh",
			Audience:  []string{"*.gestirh.com"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	// Use HS256 signing method (symmetric key)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}
