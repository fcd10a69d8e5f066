package main

// Prints an ADMIN_PASSWORD_HASH line for the legacy admin secret.
//
//	go run ./scripts/genhash.go 'my-secret'

import (
	"fmt"
	"os"

	"go-jobboard-backend/pkg/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Single quotes keep dotenv from expanding the $ segments of the hash
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
}
