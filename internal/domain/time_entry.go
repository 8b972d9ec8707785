package domain

import (
	"time"
)

// TimeEntry represents a time tracking entry in the domain model.
// This is a pure domain model without database-specific concerns.
type TimeEntry struct {
	ID              int64      `json:"id"`
	TaskID          int64      `json:"task_id"`
	UserID          int64      `json:"user_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	WorkDate        time.Time  `json:"work_date"`
}

// NewTimeEntry creates a new open TimeEntry for the given task and user,
// attributed to the calendar date of the start time.
func NewTimeEntry(taskID, userID int64, startTime time.Time) TimeEntry {
	return TimeEntry{
		TaskID:    taskID,
		UserID:    userID,
		StartTime: startTime,
		WorkDate:  DateOf(startTime),
	}
}

// IsOpen returns true if the entry's timer is still running (no end time).
func (te TimeEntry) IsOpen() bool {
	return te.EndTime == nil
}

// Close stops the entry at endTime, recording whole elapsed minutes.
func (te TimeEntry) Close(endTime time.Time) TimeEntry {
	minutes := MinutesBetween(te.StartTime, endTime)
	te.EndTime = &endTime
	te.DurationMinutes = &minutes
	return te
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.TaskID <= 0 || te.UserID <= 0 {
		return false
	}
	if te.StartTime.IsZero() {
		return false
	}
	if te.EndTime != nil && te.EndTime.Before(te.StartTime) {
		return false
	}
	return true
}

// MinutesBetween returns the whole minutes elapsed from start to end,
// fractional seconds truncated. Never negative.
func MinutesBetween(start, end time.Time) int64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}

// DateOf strips the time-of-day portion, keeping the calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
