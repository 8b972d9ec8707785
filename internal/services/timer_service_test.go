package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/errors"
)

func TestTimerService_Start(t *testing.T) {
	repo := setupRepo(t)
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	service := NewTimerService(repo, clk)

	ada := seedUser(t, repo, "ada", "Ada Lovelace", "ada@example.com")
	grace := seedUser(t, repo, "grace", "Grace Hopper", "grace@example.com")

	t.Run("should open an entry attributed to the start date", func(t *testing.T) {
		task := seedTask(t, repo, ada.ID, "timed", "inprogress", clk.Now())

		entry, err := service.Start(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)
		assert.True(t, entry.IsOpen())
		assert.Equal(t, clk.Now(), entry.StartTime)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), entry.WorkDate)
	})

	t.Run("should close the prior open entry on a double start", func(t *testing.T) {
		task := seedTask(t, repo, ada.ID, "restarted", "inprogress", clk.Now())

		first, err := service.Start(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)

		clk.Advance(20 * time.Minute)
		second, err := service.Start(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		// The first entry got closed with the elapsed minutes.
		closed, err := repo.GetTimeEntry(context.Background(), first.ID)
		require.NoError(t, err)
		require.NotNil(t, closed.EndTime)
		require.NotNil(t, closed.DurationMinutes)
		assert.Equal(t, int64(20), *closed.DurationMinutes)

		// Exactly one open entry remains for the pair.
		open, err := repo.GetOpenTimeEntry(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, open.ID)
	})

	t.Run("should keep timers per user on the same task", func(t *testing.T) {
		task := seedTask(t, repo, ada.ID, "shared", "inprogress", clk.Now())

		_, err := service.Start(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)
		_, err = service.Start(context.Background(), task.ID, grace.ID)
		require.NoError(t, err)

		// Both stay open; one user starting never closes the other's entry.
		_, err = repo.GetOpenTimeEntry(context.Background(), task.ID, ada.ID)
		assert.NoError(t, err)
		_, err = repo.GetOpenTimeEntry(context.Background(), task.ID, grace.ID)
		assert.NoError(t, err)
	})

	t.Run("should reject a missing task", func(t *testing.T) {
		_, err := service.Start(context.Background(), 9999, ada.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("should reject invalid IDs", func(t *testing.T) {
		_, err := service.Start(context.Background(), 0, ada.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

		_, err = service.Start(context.Background(), 1, -1)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}

func TestTimerService_Stop(t *testing.T) {
	repo := setupRepo(t)
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	service := NewTimerService(repo, clk)

	ada := seedUser(t, repo, "ada", "Ada Lovelace", "ada@example.com")

	t.Run("should close the open entry with whole minutes", func(t *testing.T) {
		task := seedTask(t, repo, ada.ID, "timed", "inprogress", clk.Now())

		started, err := service.Start(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)

		clk.Advance(45*time.Minute + 30*time.Second)
		stopped, err := service.Stop(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)

		assert.Equal(t, started.ID, stopped.ID)
		require.NotNil(t, stopped.EndTime)
		require.NotNil(t, stopped.DurationMinutes)
		assert.Equal(t, clk.Now(), *stopped.EndTime)
		assert.Equal(t, int64(45), *stopped.DurationMinutes)
	})

	t.Run("should report no active timer when nothing is open", func(t *testing.T) {
		task := seedTask(t, repo, ada.ID, "idle", "todo", clk.Now())

		_, err := service.Stop(context.Background(), task.ID, ada.ID)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Contains(t, err.Error(), "active timer")
	})

	t.Run("should report no active timer on a second stop", func(t *testing.T) {
		task := seedTask(t, repo, ada.ID, "stopped twice", "inprogress", clk.Now())

		_, err := service.Start(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)
		_, err = service.Stop(context.Background(), task.ID, ada.ID)
		require.NoError(t, err)

		_, err = service.Stop(context.Background(), task.ID, ada.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}

func TestTimerService_EntriesInRange(t *testing.T) {
	repo := setupRepo(t)
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	service := NewTimerService(repo, clk)

	ada := seedUser(t, repo, "ada", "Ada Lovelace", "ada@example.com")
	task := seedTask(t, repo, ada.ID, "timed", "inprogress", clk.Now())

	_, err := service.Start(context.Background(), task.ID, ada.ID)
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = service.Stop(context.Background(), task.ID, ada.ID)
	require.NoError(t, err)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entries, err := service.EntriesInRange(context.Background(), &ada.ID, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Reversed bounds are rejected rather than silently empty.
	_, err = service.EntriesInRange(context.Background(), &ada.ID, monday.AddDate(0, 0, 6), monday)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}
