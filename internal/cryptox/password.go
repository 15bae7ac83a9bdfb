// Package cryptox implements credential hashing for application users.
// Passwords are never stored: a per-user random salt and an argon2id
// verifier derived from the password are kept instead.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/pokestore/internal/common"
)

const saltSize = 32

// GenerateSalt returns a fresh random salt for a new user record.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

// DeriveKey stretches the password with argon2id using the given salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier hashes a derived key into the value stored in the users table.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// HashPassword produces the stored verifier for a password and salt.
func HashPassword(password []byte, salt []byte) []byte {
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// CheckPassword reports whether the password matches the stored verifier.
// The comparison is constant time.
func CheckPassword(password []byte, salt []byte, verifier []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
