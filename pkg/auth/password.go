package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is fixed when a hash is created; comparisons read the cost from the hash.
const PasswordCost = 10

var (
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrPasswordMismatch = errors.New("password does not match hash")
	ErrMalformedHash    = errors.New("malformed bcrypt hash")
)

// dummyHash is compared against when no stored hash exists, so a lookup miss costs
// the same as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// HashPassword hashes a password with bcrypt at PasswordCost.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePassword validates the cleartext password against a bcrypt hash.
func ComparePassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return nil
}

// BurnComparison runs a comparison whose result is discarded.
func BurnComparison(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// ValidateHash checks that s looks like a complete bcrypt hash.
func ValidateHash(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrMalformedHash)
	}
	if !strings.HasPrefix(s, "$2") || len(s) != 60 {
		return fmt.Errorf("%w: expected 60 chars starting with $2, got %d chars", ErrMalformedHash, len(s))
	}
	if _, err := bcrypt.Cost([]byte(s)); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return nil
}

// HashPreview renders a hash safely for startup diagnostics.
func HashPreview(s string) string {
	if s == "" {
		return "not set"
	}
	if len(s) <= 4 {
		return fmt.Sprintf("...(%d chars)", len(s))
	}
	return fmt.Sprintf("%s...(%d chars)", s[:4], len(s))
}
