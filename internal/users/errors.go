package users

import "errors"

var (
	// ErrNotFound indicates no account exists for the given identifier.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials indicates an unknown email or password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
