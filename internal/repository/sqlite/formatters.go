package sqlite

import (
	"time"
)

// DateFormat is the storage layout for work_date columns.
const DateFormat = "2006-01-02"

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB formats the date portion of a time.Time for work_date storage
func FormatDateForDB(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDateFromDB parses a stored work_date string
func ParseDateFromDB(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
