package domain

import (
	"strings"
	"time"
	"unicode"
)

// User represents an account in the domain model. The password hash
// never leaves the process in API payloads.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Initials returns the uppercase first letters of up to the first two
// words of the full name, or an empty string if there is no full name.
func (u User) Initials() string {
	words := strings.Fields(u.FullName)
	if len(words) > 2 {
		words = words[:2]
	}

	var b strings.Builder
	for _, word := range words {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// String returns the username for display purposes.
func (u User) String() string {
	return u.Username
}
