package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
)

func seedClosedEntry(t *testing.T, repo sqlite.Repository, taskID, userID int64, workDate time.Time, minutes int64) {
	start := workDate.Add(9 * time.Hour)
	end := start.Add(time.Duration(minutes) * time.Minute)
	entry := &sqlite.TimeEntry{
		TaskID:          taskID,
		UserID:          userID,
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: &minutes,
		WorkDate:        workDate,
	}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))
}

func TestReportingService_WeekBounds(t *testing.T) {
	repo := setupRepo(t)
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	service := NewReportingService(repo, clk)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ref  time.Time
	}{
		{name: "should map Monday to its own week", ref: monday.Add(8 * time.Hour)},
		{name: "should map midweek to the same pair", ref: monday.AddDate(0, 0, 3).Add(23 * time.Hour)},
		{name: "should map Saturday to the same pair", ref: monday.AddDate(0, 0, 5)},
		{name: "should map Sunday to the week it closes", ref: sunday.Add(12 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := service.WeekBounds(tt.ref)
			assert.Equal(t, monday, start)
			assert.Equal(t, sunday, end)
		})
	}

	t.Run("should roll the next Monday into a new week", func(t *testing.T) {
		start, end := service.WeekBounds(monday.AddDate(0, 0, 7))
		assert.Equal(t, monday.AddDate(0, 0, 7), start)
		assert.Equal(t, sunday.AddDate(0, 0, 7), end)
	})
}

func TestReportingService_DashboardTimesheet(t *testing.T) {
	repo := setupRepo(t)
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	service := NewReportingService(repo, clk)

	ada := seedUser(t, repo, "ada", "Ada Lovelace", "ada@example.com")
	grace := seedUser(t, repo, "grace", "Grace Hopper", "grace@example.com")
	task := seedTask(t, repo, ada.ID, "timed", "inprogress", clk.Now())

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, 6)

	// 90m Monday plus 30m Monday, 45m Wednesday for ada; grace logs nothing.
	seedClosedEntry(t, repo, task.ID, ada.ID, monday, 90)
	seedClosedEntry(t, repo, task.ID, ada.ID, monday, 30)
	seedClosedEntry(t, repo, task.ID, ada.ID, monday.AddDate(0, 0, 2), 45)

	// An open timer has no duration yet and stays out of the totals.
	openEntry := &sqlite.TimeEntry{TaskID: task.ID, UserID: ada.ID, StartTime: monday.Add(15 * time.Hour), WorkDate: monday}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), openEntry))

	rows, err := service.DashboardTimesheet(context.Background(), monday, sunday)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	adaRow := rows[ada.ID]
	require.NotNil(t, adaRow)
	assert.Equal(t, "Ada Lovelace", adaRow.FullName)
	assert.Equal(t, "AL", adaRow.Initials)
	require.Len(t, adaRow.DayHours, 7)

	// Per-entry rounding: 1.5 + 0.5 on Monday, 0.8 on Wednesday.
	assert.InDelta(t, 2.0, adaRow.DayHours["2025-03-10"], 1e-9)
	assert.InDelta(t, 0.8, adaRow.DayHours["2025-03-12"], 1e-9)
	assert.InDelta(t, 0.0, adaRow.DayHours["2025-03-16"], 1e-9)

	// Users without entries still get a zeroed row.
	graceRow := rows[grace.ID]
	require.NotNil(t, graceRow)
	for _, hours := range graceRow.DayHours {
		assert.Zero(t, hours)
	}
}

func TestReportingService_WeeklyUserReport(t *testing.T) {
	repo := setupRepo(t)
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	service := NewReportingService(repo, clk)

	ada := seedUser(t, repo, "ada", "Ada Lovelace", "ada@example.com")
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, 6)

	t.Run("should blend completion and hours into the rating", func(t *testing.T) {
		// 10 tasks created in the week, 7 of them done.
		for i := 0; i < 7; i++ {
			seedTask(t, repo, ada.ID, "done task", "done", monday.Add(time.Duration(i)*time.Hour))
		}
		for i := 0; i < 3; i++ {
			seedTask(t, repo, ada.ID, "open task", "todo", monday.Add(time.Duration(i)*time.Minute))
		}

		// 20 hours logged across the week.
		timedTask := seedTask(t, repo, ada.ID, "timed", "done", monday)
		seedClosedEntry(t, repo, timedTask.ID, ada.ID, monday, 600)
		seedClosedEntry(t, repo, timedTask.ID, ada.ID, monday.AddDate(0, 0, 3), 600)

		report, err := service.WeeklyUserReport(context.Background(), ada.ID, monday, sunday)
		require.NoError(t, err)

		// 11 tasks total including the timed one, 8 done.
		assert.Equal(t, 11, report.TasksTotal)
		assert.Equal(t, 8, report.TasksDone)
		assert.InDelta(t, 20.0, report.HoursWorked, 1e-9)
		assert.InDelta(t, 72.72727272727273, report.CompletionRate, 1e-9)

		// raw = 0.6*completion + 0.4*min(20/40,1)*100, rating on a 0-5 scale.
		assert.InDelta(t, 3.2, report.Rating, 1e-9)
	})

	t.Run("should report zero completion with no tasks", func(t *testing.T) {
		grace := seedUser(t, repo, "grace", "Grace Hopper", "grace@example.com")

		report, err := service.WeeklyUserReport(context.Background(), grace.ID, monday, sunday)
		require.NoError(t, err)
		assert.Zero(t, report.TasksTotal)
		assert.Zero(t, report.TasksDone)
		assert.Zero(t, report.CompletionRate)
		assert.Zero(t, report.HoursWorked)
		assert.Zero(t, report.Rating)
	})

	t.Run("should cap the hours credit at a full week", func(t *testing.T) {
		eve := seedUser(t, repo, "eve", "Eve Example", "eve@example.com")
		task := seedTask(t, repo, eve.ID, "grind", "done", monday)

		// 50 hours logged, hours credit caps at 100.
		seedClosedEntry(t, repo, task.ID, eve.ID, monday, 3000)

		report, err := service.WeeklyUserReport(context.Background(), eve.ID, monday, sunday)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, report.HoursWorked, 1e-9)

		// raw = 0.6*100 + 0.4*100 = 100, rating 5.0.
		assert.InDelta(t, 5.0, report.Rating, 1e-9)
	})

	t.Run("should reject reversed week bounds", func(t *testing.T) {
		_, err := service.WeeklyUserReport(context.Background(), ada.ID, sunday, monday)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("should exclude tasks created outside the week", func(t *testing.T) {
		mallory := seedUser(t, repo, "mallory", "Mallory Mix", "mallory@example.com")
		seedTask(t, repo, mallory.ID, "last week", "done", monday.Add(-time.Hour))
		seedTask(t, repo, mallory.ID, "this week", "done", monday.Add(time.Hour))
		seedTask(t, repo, mallory.ID, "next week", "done", monday.AddDate(0, 0, 7))

		report, err := service.WeeklyUserReport(context.Background(), mallory.ID, monday, sunday)
		require.NoError(t, err)
		assert.Equal(t, 1, report.TasksTotal)
	})
}
