package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gestirh.com/gestirh/security"
	"gestirh.com/gestirh/web/common"
)

const identiteKey = "identite"

func parseJwt(tokenStr string, jwtSecret []byte) (*security.IdentiteClaims, error) {
	claims := &security.IdentiteClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Authentication checks for a valid bearer token (header or application
// cookie) and stores the caller's identity on the context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie("gestirh.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identiteKey, &claims.Identite)
		c.Next()
	}
}

// CurrentIdentite returns the identity stored by Authentication.
func CurrentIdentite(c *gin.Context) (*security.Identite, bool) {
	v, ok := c.Get(identiteKey)
	if !ok {
		return nil, false
	}
	identite, ok := v.(*security.Identite)
	return identite, ok
}
