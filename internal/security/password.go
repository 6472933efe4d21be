package security

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordEncoder hashes and verifies passwords.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// BcryptEncoder is the bcrypt PasswordEncoder.
type BcryptEncoder struct {
	cost int
}

// NewBcryptEncoder creates a BcryptEncoder. A cost of 0 selects bcrypt.DefaultCost.
func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{cost: cost}
}

func (e *BcryptEncoder) Encode(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), e.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (e *BcryptEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
