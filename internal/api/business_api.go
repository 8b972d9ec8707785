package api

import (
	"context"
	"sort"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/services"
)

// BoardColumns groups a user's tasks by board column.
type BoardColumns struct {
	Todo       []domain.Task `json:"todo"`
	InProgress []domain.Task `json:"inprogress"`
	Done       []domain.Task `json:"done"`
}

// DashboardData carries everything a weekly dashboard view needs: the
// week bounds, the seven day keys in order and one timesheet row per
// user, sorted by name.
type DashboardData struct {
	WeekStart time.Time                `json:"week_start"`
	WeekEnd   time.Time                `json:"week_end"`
	DayKeys   []string                 `json:"day_keys"`
	Rows      []*services.TimesheetRow `json:"rows"`
}

// ReportData pairs a user with their weekly productivity summary.
type ReportData struct {
	User      *domain.User           `json:"user"`
	WeekStart time.Time              `json:"week_start"`
	WeekEnd   time.Time              `json:"week_end"`
	Report    *services.WeeklyReport `json:"report"`
}

// BusinessAPI defines the business-logic-only interface for board,
// timer and reporting operations. Handlers and other frontends talk to
// this instead of to the individual services.
type BusinessAPI interface {
	// ========== Accounts ==========

	// SignUp registers a new account.
	SignUp(ctx context.Context, input services.SignupInput) (*domain.User, error)

	// LogIn checks credentials and returns the account.
	LogIn(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser returns a single account by ID.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// ========== Board Workflows ==========

	// GetBoard returns the user's tasks grouped into board columns.
	GetBoard(ctx context.Context, userID int64) (*BoardColumns, error)

	// AddTask creates a task in the todo column.
	AddTask(ctx context.Context, input services.CreateTaskInput) (*domain.Task, error)

	// RenameTask retitles a task the actor owns.
	RenameTask(ctx context.Context, taskID, actorID int64, newTitle string) error

	// MoveTask moves a task to another column, closing open timers when
	// the destination is done.
	MoveTask(ctx context.Context, taskID, actorID int64, newStatus domain.Status) error

	// DeleteTask removes a task, leaving its time entries in place.
	DeleteTask(ctx context.Context, taskID, actorID int64) error

	// ========== Timer Workflows ==========

	// StartTimer opens a timer on a task, closing any prior open entry
	// for the same task and user.
	StartTimer(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error)

	// StopTimer closes the open entry for the task and user.
	StopTimer(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error)

	// ========== Dashboard and Reporting ==========

	// GetDashboard returns the timesheet for the week containing ref.
	GetDashboard(ctx context.Context, ref time.Time) (*DashboardData, error)

	// GetWeeklyReport returns one user's summary for the week containing ref.
	GetWeeklyReport(ctx context.Context, userID int64, ref time.Time) (*ReportData, error)

	// ========== Password Reset ==========

	// RequestPasswordReset issues a fresh one-time code for the email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword verifies a code and replaces the account password.
	ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	svc *services.ServiceContainer
	clk clock.Clock
}

// NewBusinessAPI creates a new BusinessAPI instance over the shared
// repository and clock.
func NewBusinessAPI(repo sqlite.Repository, clk clock.Clock, notifier services.Notifier, opts services.ContainerOptions) BusinessAPI {
	return &businessAPIImpl{
		svc: services.NewServiceContainer(repo, clk, notifier, opts),
		clk: clk,
	}
}

// ========== Accounts ==========

func (b *businessAPIImpl) SignUp(ctx context.Context, input services.SignupInput) (*domain.User, error) {
	return b.svc.AuthService.Signup(ctx, input)
}

func (b *businessAPIImpl) LogIn(ctx context.Context, username, password string) (*domain.User, error) {
	return b.svc.AuthService.Login(ctx, username, password)
}

func (b *businessAPIImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return b.svc.AuthService.GetUser(ctx, id)
}

// ========== Board Workflows ==========

func (b *businessAPIImpl) GetBoard(ctx context.Context, userID int64) (*BoardColumns, error) {
	tasks, err := b.svc.BoardService.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Empty slices rather than nil so columns render as [] in JSON.
	board := &BoardColumns{
		Todo:       []domain.Task{},
		InProgress: []domain.Task{},
		Done:       []domain.Task{},
	}
	for _, task := range tasks {
		switch task.Status {
		case domain.StatusTodo:
			board.Todo = append(board.Todo, task)
		case domain.StatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case domain.StatusDone:
			board.Done = append(board.Done, task)
		}
	}
	return board, nil
}

func (b *businessAPIImpl) AddTask(ctx context.Context, input services.CreateTaskInput) (*domain.Task, error) {
	return b.svc.BoardService.CreateTask(ctx, input)
}

func (b *businessAPIImpl) RenameTask(ctx context.Context, taskID, actorID int64, newTitle string) error {
	return b.svc.BoardService.RenameTask(ctx, taskID, actorID, newTitle)
}

func (b *businessAPIImpl) MoveTask(ctx context.Context, taskID, actorID int64, newStatus domain.Status) error {
	return b.svc.BoardService.MoveTask(ctx, taskID, actorID, newStatus)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, taskID, actorID int64) error {
	return b.svc.BoardService.DeleteTask(ctx, taskID, actorID)
}

// ========== Timer Workflows ==========

func (b *businessAPIImpl) StartTimer(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error) {
	return b.svc.TimerService.Start(ctx, taskID, userID)
}

func (b *businessAPIImpl) StopTimer(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error) {
	return b.svc.TimerService.Stop(ctx, taskID, userID)
}

// ========== Dashboard and Reporting ==========

func (b *businessAPIImpl) GetDashboard(ctx context.Context, ref time.Time) (*DashboardData, error) {
	weekStart, weekEnd := b.svc.ReportingService.WeekBounds(ref)

	rowsByUser, err := b.svc.ReportingService.DashboardTimesheet(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	dayKeys := make([]string, 0, 7)
	for d := 0; d < 7; d++ {
		dayKeys = append(dayKeys, weekStart.AddDate(0, 0, d).Format(sqlite.DateFormat))
	}

	rows := make([]*services.TimesheetRow, 0, len(rowsByUser))
	for _, row := range rowsByUser {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FullName != rows[j].FullName {
			return rows[i].FullName < rows[j].FullName
		}
		return rows[i].UserID < rows[j].UserID
	})

	return &DashboardData{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		DayKeys:   dayKeys,
		Rows:      rows,
	}, nil
}

func (b *businessAPIImpl) GetWeeklyReport(ctx context.Context, userID int64, ref time.Time) (*ReportData, error) {
	user, err := b.svc.AuthService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := b.svc.ReportingService.WeekBounds(ref)
	report, err := b.svc.ReportingService.WeeklyUserReport(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return &ReportData{
		User:      user,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Report:    report,
	}, nil
}

// ========== Password Reset ==========

func (b *businessAPIImpl) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := b.svc.PasswordResetService.RequestReset(ctx, email)
	return err
}

func (b *businessAPIImpl) ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	return b.svc.PasswordResetService.ResetPassword(ctx, email, code, newPassword, confirmPassword)
}
