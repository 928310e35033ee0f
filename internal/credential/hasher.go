// Package credential turns plaintext secrets into bcrypt credentials and
// checks candidate secrets against them.
package credential

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Strength policy
const (
	MinLength = 8
	// MaxLength is bcrypt's input limit in bytes. Longer secrets would be truncated.
	MaxLength = 72
)

// DefaultCost is the bcrypt work factor used when none is configured
const DefaultCost = 12

var (
	// ErrWeakCredential is returned when a secret fails the strength policy.
	ErrWeakCredential = errors.New("password must be at least 8 characters and contain a letter and a digit")
	// ErrInvalidCost is returned for a work factor outside bcrypt's range.
	ErrInvalidCost = errors.New("invalid bcrypt cost")
)

// Hasher hashes and verifies secrets with a fixed bcrypt cost.
// Safe for concurrent use.
type Hasher struct {
	cost      int
	dummyHash []byte
}

// NewHasher creates a hasher with the given bcrypt cost
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	// Comparison target for lookups that found no account
	dummy, err := bcrypt.GenerateFromPassword([]byte("no-such-account-0"), cost)
	if err != nil {
		return nil, fmt.Errorf("generating dummy hash: %w", err)
	}

	return &Hasher{cost: cost, dummyHash: dummy}, nil
}

// Cost returns the configured work factor
func (h *Hasher) Cost() int {
	return h.cost
}

// CheckStrength returns ErrWeakCredential unless the secret has at least
// MinLength characters, at most MaxLength bytes, a letter and a digit.
func CheckStrength(plaintext string) error {
	if len([]rune(plaintext)) < MinLength || len(plaintext) > MaxLength {
		return ErrWeakCredential
	}

	var hasLetter, hasDigit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakCredential
	}
	return nil
}

// Hash returns a salted bcrypt hash of plaintext
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing credential: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes yield false.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyDummy spends one comparison's worth of work and always reports false
func (h *Hasher) VerifyDummy(plaintext string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
	return false
}
