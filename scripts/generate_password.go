// Command generate_password prints a bcrypt hash for seeding accounts by hand.
// The cost follows BCRYPT_COST and the password must satisfy the signup policy.
package main

import (
	"fmt"
	"os"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/pkg/auth"
	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		logrus.Fatal("Usage: go run scripts/generate_password.go <password>")
	}
	password := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	passwords := auth.NewPasswordManager(cfg)

	hash, err := passwords.HashPassword(password)
	if err != nil {
		logrus.Fatalf("Error generating hash: %v", err)
	}
	if err := passwords.VerifyPassword(password, hash); err != nil {
		logrus.Fatalf("Hash verification failed: %v", err)
	}

	fmt.Println(hash)
}
