package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltBytes = 16
	passwordKeyBytes  = 32
	passwordIterCount = 100000
)

// PasswordHasher derives and verifies salted password hashes. Credentials
// are stored as "salt:hash" with both halves hex-encoded. The salt is fed
// to the KDF in its hex form, so stored hashes stay stable across restarts.
type PasswordHasher struct {
	hashFn     func() hash.Hash
	iterations int
}

// NewPasswordHasher creates a hasher with the default scheme
// (PBKDF2-SHA256, fixed iteration count).
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		hashFn:     sha256.New,
		iterations: passwordIterCount,
	}
}

// Hash derives a fresh salted credential for storage.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, passwordSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	return saltHex + ":" + h.derive(password, saltHex), nil
}

// Verify checks a provided password against a stored "salt:hash"
// credential. A credential without the separator is malformed.
func (h *PasswordHasher) Verify(stored, password string) (bool, error) {
	salt, digest, found := strings.Cut(stored, ":")
	if !found {
		return false, fmt.Errorf("stored credential is malformed")
	}
	recomputed := h.derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(recomputed)) == 1, nil
}

func (h *PasswordHasher) derive(password, saltHex string) string {
	key := pbkdf2.Key([]byte(password), []byte(saltHex), h.iterations, passwordKeyBytes, h.hashFn)
	return hex.EncodeToString(key)
}
