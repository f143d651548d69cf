package password

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = bcrypt.DefaultCost

	// MaxLength is the number of bytes bcrypt reads. Longer secrets are refused rather than
	// silently truncated.
	MaxLength = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password cannot exceed %d bytes", MaxLength)
)

var cost atomic.Int32

// SetCost changes the work factor of new hashes. Values outside bcrypt's range fall back to
// DefaultCost.
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		c = DefaultCost
	}

	cost.Store(int32(c)) //nolint:gosec
}

func Cost() int {
	if c := cost.Load(); c != 0 {
		return int(c)
	}

	return DefaultCost
}

func Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > MaxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost())
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports ErrInvalidPassword for any mismatch, including malformed input.
func Verify(password, hash string) error {
	if password == "" || hash == "" || len(password) > MaxLength {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("failed to verify password: %w", err)
	}
}

// NeedsRehash reports whether hash was made with a different cost than the current one.
func NeedsRehash(hash string) bool {
	c, err := bcrypt.Cost([]byte(hash))

	return err != nil || c != Cost()
}
