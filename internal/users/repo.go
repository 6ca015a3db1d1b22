package users

import (
	"context"
	"time"
)

// Repo defines persistence operations for user accounts.
type Repo interface {
	// Create inserts a new user and returns it with its assigned ID.
	// Returns ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, email, passwordHash string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)

	// UpdatePassword overwrites the password hash. Returns ErrNotFound
	// when no account exists for the email.
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// SetResetCode stores a reset code with its expiry, replacing any
	// pending code. Returns ErrNotFound when no account exists.
	SetResetCode(ctx context.Context, email, code string, expiry time.Time) error

	// ConsumeResetCode atomically sets the new password hash and clears
	// the code and expiry, but only where the stored code matches and is
	// unexpired at now. Reports whether a row was mutated.
	ConsumeResetCode(ctx context.Context, email, code, passwordHash string, now time.Time) (bool, error)
}
