// Package credential provides one-way password hashing and verification.
// Verifiers are self-describing bcrypt strings (algorithm, cost, salt,
// digest); the plaintext never leaves this package.
package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedVerifier is returned by Verify when the stored verifier is not
// a bcrypt string this package could have produced.
var ErrMalformedVerifier = errors.New("malformed password verifier")

type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a fresh salted verifier. Two calls with the same plaintext
// yield different verifiers.
func (h *Hasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether verifier was produced from password. The comparison
// is constant-time. A verifier that cannot be parsed yields
// ErrMalformedVerifier.
func (h *Hasher) Verify(password, verifier string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(verifier), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrMalformedVerifier, err)
}
