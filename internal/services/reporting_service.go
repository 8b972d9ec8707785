package services

import (
	"context"
	"math"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
)

const (
	// FullWeekHours caps the hours credit in the weekly rating at a
	// standard 40-hour week.
	FullWeekHours = 40.0

	// completionWeight and hoursWeight blend task completion and logged
	// hours into the raw productivity score.
	completionWeight = 0.6
	hoursWeight      = 0.4
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo   sqlite.Repository
	clk    clock.Clock
	mapper *domain.Mapper
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, clk clock.Clock) ReportingService {
	return &reportingServiceImpl{
		repo:   repo,
		clk:    clk,
		mapper: domain.NewMapper(),
	}
}

// WeekBounds returns the Monday and Sunday of the week containing ref.
// Every date within one week maps to the same pair.
func (r *reportingServiceImpl) WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := domain.DateOf(ref)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	monday := day.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// DashboardTimesheet returns per-user rows with hours bucketed into the
// seven days of the week. Hours are rounded to one decimal per entry.
func (r *reportingServiceImpl) DashboardTimesheet(ctx context.Context, weekStart, weekEnd time.Time) (map[int64]*TimesheetRow, error) {
	if weekEnd.Before(weekStart) {
		return nil, errors.NewValidationError("week end before week start", nil)
	}

	dbUsers, err := r.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	dbEntries, err := r.repo.ListTimeEntriesInRange(ctx, nil, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	// Seven day keys spanning the week.
	dayKeys := make([]string, 0, 7)
	for d := 0; d < 7; d++ {
		dayKeys = append(dayKeys, domain.DateOf(weekStart).AddDate(0, 0, d).Format(sqlite.DateFormat))
	}

	rows := make(map[int64]*TimesheetRow, len(dbUsers))
	for _, dbUser := range dbUsers {
		user := r.mapper.User.FromDatabase(*dbUser)
		row := &TimesheetRow{
			UserID:   user.ID,
			FullName: user.FullName,
			Initials: user.Initials(),
			DayHours: make(map[string]float64, len(dayKeys)),
		}
		for _, key := range dayKeys {
			row.DayHours[key] = 0
		}
		rows[user.ID] = row
	}

	for _, dbEntry := range dbEntries {
		entry := r.mapper.TimeEntry.FromDatabase(*dbEntry)
		if entry.DurationMinutes == nil {
			continue // Open timers have no hours yet
		}
		row, ok := rows[entry.UserID]
		if !ok {
			continue
		}
		key := entry.WorkDate.Format(sqlite.DateFormat)
		if _, ok := row.DayHours[key]; !ok {
			continue // Outside the generated day keys; drop silently
		}
		row.DayHours[key] += round1(float64(*entry.DurationMinutes) / 60.0)
	}

	return rows, nil
}

// WeeklyUserReport computes hours worked, task counts and the 0-5 rating
// for one user over a week. Task counts cover tasks created within the
// week; the rating blends completion rate (60%) with hours logged
// against a 40-hour week (40%).
func (r *reportingServiceImpl) WeeklyUserReport(ctx context.Context, userID int64, weekStart, weekEnd time.Time) (*WeeklyReport, error) {
	if userID <= 0 {
		return nil, errors.NewValidationError("invalid user ID", nil)
	}
	if weekEnd.Before(weekStart) {
		return nil, errors.NewValidationError("week end before week start", nil)
	}

	dbEntries, err := r.repo.ListTimeEntriesInRange(ctx, &userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	var totalMinutes int64
	for _, entry := range dbEntries {
		if entry.DurationMinutes != nil {
			totalMinutes += *entry.DurationMinutes
		}
	}
	hoursWorked := round2(float64(totalMinutes) / 60.0)

	// Tasks created within the week, end bound inclusive of the full Sunday.
	dbTasks, err := r.repo.ListTasksCreatedBetween(ctx, userID, domain.DateOf(weekStart), domain.DateOf(weekEnd).AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	tasksTotal := len(dbTasks)
	tasksDone := 0
	for _, dbTask := range dbTasks {
		if domain.Status(dbTask.Status) == domain.StatusDone {
			tasksDone++
		}
	}

	completionRate := 0.0
	if tasksTotal > 0 {
		completionRate = float64(tasksDone) / float64(tasksTotal) * 100
	}

	hoursScore := math.Min(hoursWorked/FullWeekHours, 1) * 100
	rawScore := completionWeight*completionRate + hoursWeight*hoursScore
	rating := round1(rawScore / 20)

	return &WeeklyReport{
		HoursWorked:    hoursWorked,
		TasksTotal:     tasksTotal,
		TasksDone:      tasksDone,
		CompletionRate: completionRate,
		Rating:         rating,
	}, nil
}

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
