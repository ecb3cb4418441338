package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/breaching/moodix/internal/services"
)

// Generates a bcrypt hash suitable for APP_PASSWORD_HASH. Reads the password
// from the terminal without echo, or from the first argument for scripting.
func main() {
	var password string

	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Fatalf("Failed to read password: %v", err)
		}
		password = string(raw)
	}

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
