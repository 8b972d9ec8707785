package services

import (
	"context"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
)

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo   sqlite.Repository
	clk    clock.Clock
	mapper *domain.Mapper
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, clk clock.Clock) TimerService {
	return &timerServiceImpl{
		repo:   repo,
		clk:    clk,
		mapper: domain.NewMapper(),
	}
}

// Start opens a timer on a task for a user. At most one entry per
// (task, user) may be open at a time, so any prior open entry is closed
// first. The close and the insert run in one transaction.
func (t *timerServiceImpl) Start(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error) {
	if taskID <= 0 || userID <= 0 {
		return nil, errors.NewValidationError("invalid task or user ID", nil)
	}

	var created *sqlite.TimeEntry
	err := t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		// Starting a timer on a task that does not exist is an error.
		if _, err := tx.GetTask(ctx, taskID); err != nil {
			return err
		}

		now := t.clk.Now()

		// Implicitly close a prior open entry for the same key.
		open, err := tx.GetOpenTimeEntry(ctx, taskID, userID)
		if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}
		if open != nil {
			minutes := domain.MinutesBetween(open.StartTime, now)
			if err := tx.CloseTimeEntry(ctx, open.ID, now, minutes); err != nil {
				return err
			}
		}

		created = &sqlite.TimeEntry{
			TaskID:    taskID,
			UserID:    userID,
			StartTime: now,
			WorkDate:  domain.DateOf(now),
		}
		return tx.CreateTimeEntry(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	domainEntry := t.mapper.TimeEntry.FromDatabase(*created)
	return &domainEntry, nil
}

// Stop closes the most recent open entry for a task and user, setting
// the end time and the whole minutes elapsed.
func (t *timerServiceImpl) Stop(ctx context.Context, taskID, userID int64) (*domain.TimeEntry, error) {
	if taskID <= 0 || userID <= 0 {
		return nil, errors.NewValidationError("invalid task or user ID", nil)
	}

	var closed *sqlite.TimeEntry
	err := t.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		open, err := tx.GetOpenTimeEntry(ctx, taskID, userID)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				return errors.NewNoActiveTimerError(taskID)
			}
			return err
		}

		now := t.clk.Now()
		minutes := domain.MinutesBetween(open.StartTime, now)
		if err := tx.CloseTimeEntry(ctx, open.ID, now, minutes); err != nil {
			return err
		}

		open.EndTime = &now
		open.DurationMinutes = &minutes
		closed = open
		return nil
	})
	if err != nil {
		return nil, err
	}

	domainEntry := t.mapper.TimeEntry.FromDatabase(*closed)
	return &domainEntry, nil
}

// EntriesInRange returns entries whose work date falls within the
// inclusive range, ordered by work date then start time.
func (t *timerServiceImpl) EntriesInRange(ctx context.Context, userID *int64, startDate, endDate time.Time) ([]domain.TimeEntry, error) {
	if endDate.Before(startDate) {
		return nil, errors.NewValidationError("end date before start date", nil)
	}

	dbEntries, err := t.repo.ListTimeEntriesInRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return t.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}
