// Package otp keeps one-time passwords keyed by phone number.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

const (
	// CodeLength is the number of digits in a generated code.
	CodeLength = 6
	// MaxAttempts is how many wrong guesses an entry survives.
	MaxAttempts = 5
)

// ErrNotFound is returned when no live entry exists for a phone number.
var ErrNotFound = errors.New("otp not found")

// Entry is a code together with the instant it stops being valid and the
// number of failed verifications recorded against it.
type Entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// Expired reports whether the entry is no longer valid at now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Locked reports whether the entry has used up its attempts.
func (e Entry) Locked() bool {
	return e.Attempts >= MaxAttempts
}

// Store persists entries with a time to live. Saving for a phone that already
// has an entry replaces it and resets its attempt count.
type Store interface {
	Save(ctx context.Context, phone string, entry Entry, ttl time.Duration) error
	Get(ctx context.Context, phone string) (Entry, error)
	Delete(ctx context.Context, phone string) error
	// RecordFailure bumps the attempt count of the live entry and returns the
	// new count. It returns ErrNotFound when there is no entry.
	RecordFailure(ctx context.Context, phone string) (int, error)
}

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a zero-padded numeric code of CodeLength digits.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
