package security

import (
	"context"
	"errors"

	"clinic-booking-server/internal/models"
)

// ErrBadCredentials is returned for any failed authentication.
var ErrBadCredentials = errors.New("bad credentials")

// UserLoader resolves the account behind a username.
type UserLoader interface {
	LoadUserByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Authenticator verifies a username and password and returns the account.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
}

// CredentialsAuthenticator checks passwords against the stored hash.
type CredentialsAuthenticator struct {
	users   UserLoader
	encoder PasswordEncoder
	// dummyHash is compared against when the user does not exist, so a miss
	// costs as much as a wrong password.
	dummyHash string
}

// NewCredentialsAuthenticator creates a new CredentialsAuthenticator.
func NewCredentialsAuthenticator(users UserLoader, encoder PasswordEncoder) *CredentialsAuthenticator {
	dummyHash, _ := encoder.Encode("dummy-password-for-unknown-users")
	return &CredentialsAuthenticator{users: users, encoder: encoder, dummyHash: dummyHash}
}

// Authenticate returns ErrBadCredentials for wrong passwords and deleted
// accounts alike. Lookup failures, unknown users included, are returned as
// they are after a hash comparison of the same cost.
func (a *CredentialsAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := a.users.LoadUserByUsername(ctx, username)
	if err != nil {
		a.encoder.Matches(password, a.dummyHash)
		return nil, err
	}
	matched := a.encoder.Matches(password, account.Password)
	if account.Deleted || !matched {
		return nil, ErrBadCredentials
	}
	return account, nil
}
