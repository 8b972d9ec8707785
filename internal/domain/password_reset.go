package domain

import (
	"time"
)

// PasswordReset represents a one-time password reset code. The code is
// for the notifier only and never appears in API payloads.
type PasswordReset struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// IsExpired returns true once the code's lifetime has passed.
func (pr PasswordReset) IsExpired(at time.Time) bool {
	return !at.Before(pr.ExpiresAt)
}

// IsUsable returns true if the code has not been consumed and has not expired.
func (pr PasswordReset) IsUsable(at time.Time) bool {
	return !pr.Used && !pr.IsExpired(at)
}
