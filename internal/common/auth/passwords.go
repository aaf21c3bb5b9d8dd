// Package auth hashes passwords and issues the bearer tokens that the
// authenticate-user worker resolves back to a user.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes, so passwords are pre-hashed to a
// fixed 64-character hex digest.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(hex.EncodeToString(sum[:]))
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword accepts both the pre-hashed format and accounts hashed
// as plain bcrypt before pre-hashing was introduced.
func VerifyPassword(plain, hash string) bool {
	if bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)) == nil {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
