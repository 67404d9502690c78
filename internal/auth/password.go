// Package auth implements password hashing and signed session tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// pbkdf2Iterations matches the cost the credential files were written with;
// changing it invalidates every stored hash.
const pbkdf2Iterations = 100_000

const saltBytes = 16

// NewSalt returns a fresh random salt, hex-encoded.
func NewSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives the hex-encoded PBKDF2-HMAC-SHA256 digest of password
// with the hex-encoded salt. Deterministic for fixed inputs.
func HashPassword(password, saltHex string) string {
	key := pbkdf2.Key([]byte(password), []byte(saltHex), pbkdf2Iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the digest and compares in constant time.
func VerifyPassword(password, hashHex, saltHex string) bool {
	candidate := HashPassword(password, saltHex)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hashHex)) == 1
}
