package domain

import (
	"time"
)

// Status is the board column a task lives in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// IsValid checks if the status is one of the three board columns.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Rank returns the display ordering of the status: active work surfaces
// before finished work.
func (s Status) Rank() int {
	switch s {
	case StatusTodo:
		return 1
	case StatusInProgress:
		return 2
	case StatusDone:
		return 3
	}
	return 4
}

// Priority is the informational urgency label on a task. It has no
// scheduling effect.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is a known label.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Priority       Priority  `json:"priority"`
	EstimatedHours *float64  `json:"estimated_hours,omitempty"`
	Day            string    `json:"day"`
	Status         Status    `json:"status"`
	UserID         int64     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTask creates a new Task in the todo column with the given title.
func NewTask(title, day string, userID int64) Task {
	return Task{
		Title:    title,
		Day:      day,
		UserID:   userID,
		Priority: PriorityMedium,
		Status:   StatusTodo,
	}
}

// IsDone returns true if the task sits in the done column.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOwnedBy returns true if the task belongs to the given user.
func (t Task) IsOwnedBy(userID int64) bool {
	return t.UserID == userID
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
