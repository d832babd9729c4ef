// Package hasher hashes and verifies author passwords.
package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost balances login latency against brute-force resistance.
const DefaultCost = 12

// PasswordHasher abstracts the hashing algorithm so services stay testable.
type PasswordHasher interface {
	// Hash returns a salted digest. Two calls with the same input return different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. Malformed digests yield false.
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcrypt returns a bcrypt backed hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewBcrypt(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify is constant time for well-formed digests (bcrypt compares with subtle.ConstantTimeCompare).
func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
