package passwordreset

import "errors"

var (
	// ErrInvalidOrExpiredCode indicates the reset code is wrong, already
	// consumed, or past its expiry.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired reset code")

	// ErrDeliveryFailed indicates the reset email could not be dispatched.
	ErrDeliveryFailed = errors.New("failed to send reset email")
)
