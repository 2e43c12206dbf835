package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gestirh.com/gestirh/security"
)

// Dev helper: mint an identity token for manual API calls.
func main() {
	uid := flag.String("uid", "dev-user", "utilisateur id")
	email := flag.String("email", "dev@gestirh.com", "email")
	role := flag.String("role", "admin", "role (employe, manager, admin)")
	ttl := flag.Int64("ttl", 3600, "expiry in seconds")
	flag.Parse()

	secret := os.Getenv("GESTIRH_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("GESTIRH_SIGNING_SECRET is required")
	}

	token, err := security.CreateIdentityToken(&security.Identite{
		UtilisateurID: *uid,
		Email:         *email,
		Role:          *role,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
