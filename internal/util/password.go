// Package util holds small shared helpers.
package util

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ValidatePassword enforces the registration rules: 4 to 20 characters with
// at least one digit and at least one letter.
func ValidatePassword(pw string) error {
	if len(pw) < 4 {
		return fmt.Errorf("password must be at least 4 characters long")
	}
	if len(pw) > 20 {
		return fmt.Errorf("password must be at most 20 characters long")
	}
	hasDigit, hasLetter := false, false
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ComparePassword(hash string, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
