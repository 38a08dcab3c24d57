package domain

import "time"

// User is the domain entity for a user account. ResetToken and ResetTokenExpiry
// are set by the password-reset flow and cleared once the password is updated.
type User struct {
	ID               int64
	Username         string
	PasswordHash     string
	Email            string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
}
