package users

import "time"

// User is an account row. PasswordHash is never serialized; ResetCode and
// ResetCodeExpiry are always both set or both nil.
type User struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	ResetCode       *string    `json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"createdAt"`
}
