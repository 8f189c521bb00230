// Package auth owns credential hashing and session token handling.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword transforms a plaintext password into a salted bcrypt hash.
// bcrypt embeds a fresh random salt, so hashing the same input twice yields
// different credentials.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt credential.
// The comparison is constant-time inside bcrypt.
func CheckPassword(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
