package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength keeps salt plus password inside bcrypt's 72-byte input.
const MaxPasswordLength = 48

const saltBytes = 16

// NewSalt returns a fresh random per-user salt.
func NewSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// HashPassword derives the stored hash for plaintext under salt.
func HashPassword(plaintext, salt string) (string, error) {
	if len(plaintext) > MaxPasswordLength {
		return "", fmt.Errorf("password longer than %d bytes", MaxPasswordLength)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(salt+plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword reports whether plaintext under salt matches storedHash.
func VerifyPassword(plaintext, storedHash, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(salt+plaintext)) == nil
}
