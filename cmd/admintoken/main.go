// Command admintoken mints an ADMIN JWT for the management endpoints.
// The signing secret comes from ADMIN_JWT_SECRET; subject and TTL are
// flags. The token is printed to stdout for use in an Authorization
// header.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

func main() {
	subject := flag.String("sub", "ops", "subject claim identifying the operator")
	ttl := flag.Int("ttl", 60, "token lifetime in minutes")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}

	tok, err := utils.NewAdminToken(secret, *subject, *ttl)
	if err != nil {
		log.Fatalf("signing token: %v", err)
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
}
