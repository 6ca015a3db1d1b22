package auth

import "errors"

var (
	// ErrMissingEmailClaim indicates the identity assertion carries no email.
	ErrMissingEmailClaim = errors.New("identity assertion does not contain an email")

	// ErrInvalidAssertion indicates the provider token failed verification.
	ErrInvalidAssertion = errors.New("invalid or expired identity token")
)
