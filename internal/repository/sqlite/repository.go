package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error

	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasksForUser(ctx context.Context, userID int64) ([]*Task, error)
	ListTasksCreatedBetween(ctx context.Context, userID int64, start, end time.Time) ([]*Task, error)
	UpdateTaskTitle(ctx context.Context, id int64, title string, updatedAt time.Time) error
	UpdateTaskStatus(ctx context.Context, id int64, status string, updatedAt time.Time) error
	DeleteTask(ctx context.Context, id int64) error

	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	GetOpenTimeEntry(ctx context.Context, taskID, userID int64) (*TimeEntry, error)
	ListOpenTimeEntriesForTask(ctx context.Context, taskID int64) ([]*TimeEntry, error)
	CloseTimeEntry(ctx context.Context, id int64, endTime time.Time, durationMinutes int64) error
	ListTimeEntriesInRange(ctx context.Context, userID *int64, startDate, endDate time.Time) ([]*TimeEntry, error)

	// Password reset operations
	CreatePasswordReset(ctx context.Context, reset *PasswordReset) error
	GetLatestPasswordReset(ctx context.Context, email string) (*PasswordReset, error)
	MarkPasswordResetsUsed(ctx context.Context, email string) error
	MarkPasswordResetUsed(ctx context.Context, id int64) error

	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
	ex executor
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	// Foreign keys are declared in the schema but deliberately left
	// unenforced: task deletion keeps orphaned time entries.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, ex: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// WithTx runs fn inside a single transaction. Nested calls reuse the
// transaction already in progress.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if _, ok := r.ex.(*sql.Tx); ok {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseError("begin transaction", err)
	}

	if err := fn(&SQLiteRepository{db: r.db, ex: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("commit transaction", err)
	}
	return nil
}

// CreateUser creates a new user
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
	INSERT INTO users (username, full_name, email, password_hash, created_at)
	VALUES (?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.ex, query, user.Username, user.FullName, user.Email, user.PasswordHash, FormatTimeForDB(user.CreatedAt))
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	query := `
	SELECT id, username, full_name, email, password_hash, created_at
	FROM users
	WHERE id = ?`

	return QuerySingle(ctx, r.ex, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// GetUserByUsername retrieves a user by username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
	SELECT id, username, full_name, email, password_hash, created_at
	FROM users
	WHERE username = ?`

	return QuerySingle(ctx, r.ex, query, ScanUser, "user", username, username)
}

// GetUserByEmail retrieves a user by email
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
	SELECT id, username, full_name, email, password_hash, created_at
	FROM users
	WHERE email = ?`

	return QuerySingle(ctx, r.ex, query, ScanUser, "user", email, email)
}

// ListUsers retrieves all users ordered by full name
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*User, error) {
	query := `
	SELECT id, username, full_name, email, password_hash, created_at
	FROM users
	ORDER BY full_name ASC, username ASC`

	return QueryMultiple(ctx, r.ex, query, ScanUsers, "users")
}

// UpdateUserPassword replaces a user's password hash
func (r *SQLiteRepository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.ex, query, "user", fmt.Sprintf("%d", id), passwordHash, id)
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tasks (title, description, priority, estimated_hours, day, status, user_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var estimatedHours interface{}
	if task.EstimatedHours != nil {
		estimatedHours = *task.EstimatedHours
	}

	id, err := ExecuteWithLastInsertID(ctx, r.ex, query,
		task.Title, task.Description, task.Priority, estimatedHours, task.Day,
		task.Status, task.UserID, FormatTimeForDB(task.CreatedAt), FormatTimeForDB(task.UpdatedAt))
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `
	SELECT id, title, description, priority, estimated_hours, day, status, user_id, created_at, updated_at
	FROM tasks
	WHERE id = ?`

	return QuerySingle(ctx, r.ex, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasksForUser retrieves a user's tasks ordered by status rank
// (todo, inprogress, done), most recently created first within each rank.
func (r *SQLiteRepository) ListTasksForUser(ctx context.Context, userID int64) ([]*Task, error) {
	query := `
	SELECT id, title, description, priority, estimated_hours, day, status, user_id, created_at, updated_at
	FROM tasks
	WHERE user_id = ?
	ORDER BY CASE status
		WHEN 'todo' THEN 1
		WHEN 'inprogress' THEN 2
		WHEN 'done' THEN 3
		ELSE 4
	END ASC, created_at DESC`

	return QueryMultiple(ctx, r.ex, query, ScanTasks, "tasks", userID)
}

// ListTasksCreatedBetween retrieves a user's tasks created within [start, end)
func (r *SQLiteRepository) ListTasksCreatedBetween(ctx context.Context, userID int64, start, end time.Time) ([]*Task, error) {
	query := `
	SELECT id, title, description, priority, estimated_hours, day, status, user_id, created_at, updated_at
	FROM tasks
	WHERE user_id = ? AND created_at >= ? AND created_at < ?
	ORDER BY created_at ASC`

	return QueryMultiple(ctx, r.ex, query, ScanTasks, "tasks", userID, FormatTimeForDB(start), FormatTimeForDB(end))
}

// UpdateTaskTitle sets a task's title. A missing task is a silent no-op;
// callers that care about existence must check first.
func (r *SQLiteRepository) UpdateTaskTitle(ctx context.Context, id int64, title string, updatedAt time.Time) error {
	query := `UPDATE tasks SET title = ?, updated_at = ? WHERE id = ?`
	return Execute(ctx, r.ex, query, title, FormatTimeForDB(updatedAt), id)
}

// UpdateTaskStatus sets a task's status
func (r *SQLiteRepository) UpdateTaskStatus(ctx context.Context, id int64, status string, updatedAt time.Time) error {
	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.ex, query, "task", fmt.Sprintf("%d", id), status, FormatTimeForDB(updatedAt), id)
}

// DeleteTask deletes a task by ID. Time entries for the task are not
// cascade-deleted; orphaned rows are accepted.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.ex, query, "task", fmt.Sprintf("%d", id), id)
}

// CreateTimeEntry creates a new time entry
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (task_id, user_id, start_time, end_time, duration_minutes, work_date)
	VALUES (?, ?, ?, ?, ?, ?)`

	var duration interface{}
	if entry.DurationMinutes != nil {
		duration = *entry.DurationMinutes
	}

	id, err := ExecuteWithLastInsertID(ctx, r.ex, query,
		entry.TaskID, entry.UserID, FormatTimeForDB(entry.StartTime),
		FormatTimePtrForDB(entry.EndTime), duration, FormatDateForDB(entry.WorkDate))
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := `
	SELECT id, task_id, user_id, start_time, end_time, duration_minutes, work_date
	FROM time_entries
	WHERE id = ?`

	return QuerySingle(ctx, r.ex, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// GetOpenTimeEntry retrieves the most recent open entry for a task and user
func (r *SQLiteRepository) GetOpenTimeEntry(ctx context.Context, taskID, userID int64) (*TimeEntry, error) {
	query := `
	SELECT id, task_id, user_id, start_time, end_time, duration_minutes, work_date
	FROM time_entries
	WHERE task_id = ? AND user_id = ? AND end_time IS NULL
	ORDER BY start_time DESC
	LIMIT 1`

	return QuerySingle(ctx, r.ex, query, ScanTimeEntry, "open time entry", fmt.Sprintf("task %d user %d", taskID, userID), taskID, userID)
}

// ListOpenTimeEntriesForTask retrieves all open entries for a task across users
func (r *SQLiteRepository) ListOpenTimeEntriesForTask(ctx context.Context, taskID int64) ([]*TimeEntry, error) {
	query := `
	SELECT id, task_id, user_id, start_time, end_time, duration_minutes, work_date
	FROM time_entries
	WHERE task_id = ? AND end_time IS NULL
	ORDER BY start_time ASC`

	return QueryMultiple(ctx, r.ex, query, ScanTimeEntries, "time entries", taskID)
}

// CloseTimeEntry sets the end time and duration on an entry
func (r *SQLiteRepository) CloseTimeEntry(ctx context.Context, id int64, endTime time.Time, durationMinutes int64) error {
	query := `UPDATE time_entries SET end_time = ?, duration_minutes = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.ex, query, "time entry", fmt.Sprintf("%d", id), FormatTimeForDB(endTime), durationMinutes, id)
}

// ListTimeEntriesInRange retrieves entries whose work_date falls within the
// inclusive date range, for one user or for all users when userID is nil.
func (r *SQLiteRepository) ListTimeEntriesInRange(ctx context.Context, userID *int64, startDate, endDate time.Time) ([]*TimeEntry, error) {
	query := `
	SELECT id, task_id, user_id, start_time, end_time, duration_minutes, work_date
	FROM time_entries
	WHERE work_date >= ? AND work_date <= ?`
	args := []interface{}{FormatDateForDB(startDate), FormatDateForDB(endDate)}

	if userID != nil {
		query += " AND user_id = ?"
		args = append(args, *userID)
	}
	query += " ORDER BY work_date ASC, start_time ASC"

	return QueryMultiple(ctx, r.ex, query, ScanTimeEntries, "time entries", args...)
}

// CreatePasswordReset creates a new password reset code
func (r *SQLiteRepository) CreatePasswordReset(ctx context.Context, reset *PasswordReset) error {
	query := `
	INSERT INTO password_resets (email, otp, created_at, expires_at, used)
	VALUES (?, ?, ?, ?, ?)`

	used := 0
	if reset.Used {
		used = 1
	}

	id, err := ExecuteWithLastInsertID(ctx, r.ex, query,
		reset.Email, reset.Code, FormatTimeForDB(reset.CreatedAt), FormatTimeForDB(reset.ExpiresAt), used)
	if err != nil {
		return err
	}

	reset.ID = id
	return nil
}

// GetLatestPasswordReset retrieves the most recently issued code for an email
func (r *SQLiteRepository) GetLatestPasswordReset(ctx context.Context, email string) (*PasswordReset, error) {
	query := `
	SELECT id, email, otp, created_at, expires_at, used
	FROM password_resets
	WHERE email = ?
	ORDER BY created_at DESC, id DESC
	LIMIT 1`

	return QuerySingle(ctx, r.ex, query, ScanPasswordReset, "password reset", email, email)
}

// MarkPasswordResetsUsed invalidates all outstanding codes for an email
func (r *SQLiteRepository) MarkPasswordResetsUsed(ctx context.Context, email string) error {
	query := `UPDATE password_resets SET used = 1 WHERE email = ? AND used = 0`
	return Execute(ctx, r.ex, query, email)
}

// MarkPasswordResetUsed consumes a single code
func (r *SQLiteRepository) MarkPasswordResetUsed(ctx context.Context, id int64) error {
	query := `UPDATE password_resets SET used = 1 WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.ex, query, "password reset", fmt.Sprintf("%d", id), id)
}
