package api

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/services"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type dropNotifier struct{}

func (dropNotifier) Send(ctx context.Context, email, code string) error { return nil }

func setupAPI(t *testing.T) (BusinessAPI, *fixedClock) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clk := &fixedClock{now: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)}
	businessAPI := NewBusinessAPI(repo, clk, dropNotifier{}, services.ContainerOptions{
		BcryptCost:   bcrypt.MinCost,
		ResetCodeTTL: 10 * time.Minute,
	})
	return businessAPI, clk
}

func signUpUser(t *testing.T, businessAPI BusinessAPI, username, fullName, email string) *domain.User {
	user, err := businessAPI.SignUp(context.Background(), services.SignupInput{
		Username:        username,
		FullName:        fullName,
		Email:           email,
		Password:        "long enough",
		ConfirmPassword: "long enough",
	})
	require.NoError(t, err)
	return user
}

func TestBusinessAPI_GetBoard(t *testing.T) {
	businessAPI, _ := setupAPI(t)
	user := signUpUser(t, businessAPI, "ada", "Ada Lovelace", "ada@example.com")

	t.Run("should return empty columns for a fresh board", func(t *testing.T) {
		board, err := businessAPI.GetBoard(context.Background(), user.ID)
		require.NoError(t, err)
		assert.NotNil(t, board.Todo)
		assert.Empty(t, board.Todo)
		assert.Empty(t, board.InProgress)
		assert.Empty(t, board.Done)
	})

	t.Run("should group tasks by column", func(t *testing.T) {
		task, err := businessAPI.AddTask(context.Background(), services.CreateTaskInput{
			Title: "First", Day: "wednesday", UserID: user.ID,
		})
		require.NoError(t, err)

		_, err = businessAPI.AddTask(context.Background(), services.CreateTaskInput{
			Title: "Second", Day: "wednesday", UserID: user.ID,
		})
		require.NoError(t, err)

		require.NoError(t, businessAPI.MoveTask(context.Background(), task.ID, user.ID, domain.StatusInProgress))

		board, err := businessAPI.GetBoard(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Len(t, board.Todo, 1)
		assert.Len(t, board.InProgress, 1)
		assert.Empty(t, board.Done)
	})
}

func TestBusinessAPI_GetDashboard(t *testing.T) {
	businessAPI, clk := setupAPI(t)
	grace := signUpUser(t, businessAPI, "grace", "Grace Hopper", "grace@example.com")
	signUpUser(t, businessAPI, "ada", "Ada Lovelace", "ada@example.com")

	task, err := businessAPI.AddTask(context.Background(), services.CreateTaskInput{
		Title: "Timed", Day: "wednesday", UserID: grace.ID,
	})
	require.NoError(t, err)

	_, err = businessAPI.StartTimer(context.Background(), task.ID, grace.ID)
	require.NoError(t, err)
	clk.Advance(2 * time.Hour)
	_, err = businessAPI.StopTimer(context.Background(), task.ID, grace.ID)
	require.NoError(t, err)

	dashboard, err := businessAPI.GetDashboard(context.Background(), clk.Now())
	require.NoError(t, err)

	// 2025-03-12 is a Wednesday.
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), dashboard.WeekStart)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), dashboard.WeekEnd)
	require.Len(t, dashboard.DayKeys, 7)
	assert.Equal(t, "2025-03-10", dashboard.DayKeys[0])
	assert.Equal(t, "2025-03-16", dashboard.DayKeys[6])

	// Rows are sorted by full name: Ada before Grace.
	require.Len(t, dashboard.Rows, 2)
	assert.Equal(t, "Ada Lovelace", dashboard.Rows[0].FullName)
	assert.Equal(t, "Grace Hopper", dashboard.Rows[1].FullName)
	assert.InDelta(t, 2.0, dashboard.Rows[1].DayHours["2025-03-12"], 1e-9)
}

func TestBusinessAPI_GetWeeklyReport(t *testing.T) {
	businessAPI, clk := setupAPI(t)
	user := signUpUser(t, businessAPI, "ada", "Ada Lovelace", "ada@example.com")

	task, err := businessAPI.AddTask(context.Background(), services.CreateTaskInput{
		Title: "Only task", Day: "wednesday", UserID: user.ID,
	})
	require.NoError(t, err)
	require.NoError(t, businessAPI.MoveTask(context.Background(), task.ID, user.ID, domain.StatusDone))

	report, err := businessAPI.GetWeeklyReport(context.Background(), user.ID, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, user.ID, report.User.ID)
	assert.Equal(t, 1, report.Report.TasksTotal)
	assert.Equal(t, 1, report.Report.TasksDone)
	assert.InDelta(t, 100.0, report.Report.CompletionRate, 1e-9)

	// Full completion with no hours: raw = 0.6*100, rating 3.0.
	assert.InDelta(t, 3.0, report.Report.Rating, 1e-9)
}

func TestBusinessAPI_PasswordReset(t *testing.T) {
	businessAPI, _ := setupAPI(t)
	signUpUser(t, businessAPI, "ada", "Ada Lovelace", "ada@example.com")

	err := businessAPI.RequestPasswordReset(context.Background(), "ada@example.com")
	assert.NoError(t, err)

	err = businessAPI.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.Error(t, err)
}
