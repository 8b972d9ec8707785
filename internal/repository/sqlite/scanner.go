package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string

	err := scanner.Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*User, error) {
	var users []*User
	for rows.Next() {
		user, err := ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var estimatedHours sql.NullFloat64
	var createdAt, updatedAt string

	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&estimatedHours,
		&task.Day,
		&task.Status,
		&task.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if estimatedHours.Valid {
		task.EstimatedHours = &estimatedHours.Float64
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var startTime, workDate string
	var endTime sql.NullString
	var duration sql.NullInt64

	err := scanner.Scan(
		&entry.ID,
		&entry.TaskID,
		&entry.UserID,
		&startTime,
		&endTime,
		&duration,
		&workDate,
	)
	if err != nil {
		return nil, err
	}

	if entry.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, err
	}
	if endTime.Valid {
		parsed, err := ParseTimeFromDB(endTime.String)
		if err != nil {
			return nil, err
		}
		entry.EndTime = &parsed
	}
	if duration.Valid {
		entry.DurationMinutes = &duration.Int64
	}
	if entry.WorkDate, err = ParseDateFromDB(workDate); err != nil {
		return nil, err
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanPasswordReset scans a single password reset code from a database row
func ScanPasswordReset(scanner Scanner) (*PasswordReset, error) {
	reset := &PasswordReset{}
	var createdAt, expiresAt string
	var used int64

	err := scanner.Scan(
		&reset.ID,
		&reset.Email,
		&reset.Code,
		&createdAt,
		&expiresAt,
		&used,
	)
	if err != nil {
		return nil, err
	}

	if reset.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if reset.ExpiresAt, err = ParseTimeFromDB(expiresAt); err != nil {
		return nil, err
	}
	reset.Used = used != 0

	return reset, nil
}
