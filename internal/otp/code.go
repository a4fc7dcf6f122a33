package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeDigits = 6

// GenerateCode returns a fresh 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
