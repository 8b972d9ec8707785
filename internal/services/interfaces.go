package services

import (
	"context"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
)

// CreateTaskInput carries the fields for creating a board task.
type CreateTaskInput struct {
	Title          string          `json:"title"`
	Day            string          `json:"day"`
	UserID         int64           `json:"user_id"`
	Description    string          `json:"description,omitempty"`
	Priority       domain.Priority `json:"priority,omitempty"` // Defaults to medium when empty
	EstimatedHours *float64        `json:"estimated_hours,omitempty"`
}

// SignupInput carries the fields for registering an account.
type SignupInput struct {
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// TimesheetRow represents one user's hours across a week, keyed by work date.
type TimesheetRow struct {
	UserID   int64              `json:"user_id"`
	FullName string             `json:"full_name"`
	Initials string             `json:"initials"`
	DayHours map[string]float64 `json:"day_hours"` // Keyed by YYYY-MM-DD
}

// WeeklyReport represents one user's productivity summary for a week.
type WeeklyReport struct {
	HoursWorked    float64 `json:"hours_worked"`
	TasksTotal     int     `json:"tasks_total"`
	TasksDone      int     `json:"tasks_done"`
	CompletionRate float64 `json:"completion_rate"`
	Rating         float64 `json:"rating"` // 0-5 scale
}

// BoardService handles task lifecycle and board movement operations.
// Mutating operations take the acting user's ID and reject tasks the
// actor does not own.
type BoardService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	RenameTask(ctx context.Context, taskID, actorID int64, newTitle string) error
	MoveTask(ctx context.Context, taskID, actorID int64, newStatus domain.Status) error
	DeleteTask(ctx context.Context, taskID, actorID int64) error
}

// TimerService handles start/stop time tracking bookkeeping.
type TimerService interface {
	// Start opens a timer on a task, implicitly closing any open entry
	// for the same task and user first.
	Start(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error)

	// Stop closes the most recent open entry for the task and user.
	Stop(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error)

	// EntriesInRange returns entries attributed to the inclusive date
	// range, for one user or for all users when userID is nil.
	EntriesInRange(ctx context.Context, userID *int64, startDate, endDate time.Time) ([]domain.TimeEntry, error)
}

// ReportingService computes weekly timesheets and productivity ratings.
type ReportingService interface {
	// WeekBounds returns the Monday and Sunday of the week containing ref.
	WeekBounds(ref time.Time) (time.Time, time.Time)

	// DashboardTimesheet returns per-user, per-day hour totals for the week.
	DashboardTimesheet(ctx context.Context, weekStart, weekEnd time.Time) (map[int64]*TimesheetRow, error)

	// WeeklyUserReport returns hours, task counts and the 0-5 rating for one user.
	WeeklyUserReport(ctx context.Context, userID int64, weekStart, weekEnd time.Time) (*WeeklyReport, error)
}

// AuthService handles signup and credential checks.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// PasswordResetService handles the OTP-based password reset flow.
type PasswordResetService interface {
	// RequestReset invalidates outstanding codes for the email, issues a
	// fresh one and hands it to the notifier. Delivery failure is logged
	// and tolerated; the persisted code stays valid.
	RequestReset(ctx context.Context, email string) (*domain.PasswordReset, error)

	// ResetPassword verifies the code, consumes it and replaces the
	// user's password hash.
	ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error
}

// Notifier delivers a password reset code to a user. Implementations may
// email, print or drop the code; the reset flow only requires that
// delivery is attempted.
type Notifier interface {
	Send(ctx context.Context, email, code string) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	BoardService         BoardService
	TimerService         TimerService
	ReportingService     ReportingService
	AuthService          AuthService
	PasswordResetService PasswordResetService
}

// ContainerOptions carries the tunables the services need.
type ContainerOptions struct {
	BcryptCost   int
	ResetCodeTTL time.Duration
}

// NewServiceContainer wires all services over a shared repository and clock.
func NewServiceContainer(repo sqlite.Repository, clk clock.Clock, notifier Notifier, opts ContainerOptions) *ServiceContainer {
	return &ServiceContainer{
		BoardService:         NewBoardService(repo, clk),
		TimerService:         NewTimerService(repo, clk),
		ReportingService:     NewReportingService(repo, clk),
		AuthService:          NewAuthService(repo, clk, opts.BcryptCost),
		PasswordResetService: NewPasswordResetService(repo, clk, notifier, opts.BcryptCost, opts.ResetCodeTTL),
	}
}
