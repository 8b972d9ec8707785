package sqlite

import "time"

// User represents a user row
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Task represents a task row on the board
type Task struct {
	ID             int64
	Title          string
	Description    string
	Priority       string
	EstimatedHours *float64 // Using pointer to allow NULL values
	Day            string
	Status         string
	UserID         int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TimeEntry represents a single time tracking row
type TimeEntry struct {
	ID              int64
	TaskID          int64
	UserID          int64
	StartTime       time.Time
	EndTime         *time.Time // NULL while the timer is running
	DurationMinutes *int64     // NULL while the timer is running
	WorkDate        time.Time  // Calendar date the entry is attributed to
}

// PasswordReset represents a one-time password reset code row
type PasswordReset struct {
	ID        int64
	Email     string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}
