package services

import (
	"context"
	"fmt"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	repo          sqlite.Repository
	clk           clock.Clock
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewBoardService creates a new BoardService instance
func NewBoardService(repo sqlite.Repository, clk clock.Clock) BoardService {
	return &boardServiceImpl{
		repo:          repo,
		clk:           clk,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// CreateTask creates a new task in the todo column
func (b *boardServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	// Validate title
	title, err := b.taskValidator.GetValidTitle(input.Title)
	if err != nil {
		return nil, errors.NewValidationError("invalid task title", err)
	}

	// Priority defaults to medium
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if err := b.taskValidator.ValidatePriority(priority); err != nil {
		return nil, errors.NewValidationError("invalid task priority", err)
	}

	if input.UserID <= 0 {
		return nil, errors.NewValidationError("invalid user ID", nil)
	}

	now := b.clk.Now()
	dbTask := &sqlite.Task{
		Title:          title,
		Description:    input.Description,
		Priority:       string(priority),
		EstimatedHours: input.EstimatedHours,
		Day:            input.Day,
		Status:         string(domain.StatusTodo),
		UserID:         input.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := b.repo.CreateTask(ctx, dbTask); err != nil {
		return nil, err
	}

	domainTask := b.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// GetTask retrieves a task by its ID
func (b *boardServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := b.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := b.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	domainTask := b.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// ListTasks returns a user's tasks ordered by board column (todo,
// inprogress, done), newest first within each column.
func (b *boardServiceImpl) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if userID <= 0 {
		return nil, errors.NewValidationError("invalid user ID", nil)
	}

	dbTasks, err := b.repo.ListTasksForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return b.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// RenameTask sets a new title on a task. Renaming a task that does not
// exist is a silent no-op.
func (b *boardServiceImpl) RenameTask(ctx context.Context, taskID, actorID int64, newTitle string) error {
	if err := b.taskValidator.ValidateTaskID(taskID); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	title, err := b.taskValidator.GetValidTitle(newTitle)
	if err != nil {
		return errors.NewValidationError("invalid task title", err)
	}

	dbTask, err := b.repo.GetTask(ctx, taskID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil // Silent no-op for missing tasks
		}
		return err
	}
	if dbTask.UserID != actorID {
		return errors.NewUnauthorizedError("rename", fmt.Sprintf("task %d", taskID))
	}

	return b.repo.UpdateTaskTitle(ctx, taskID, title, b.clk.Now())
}

// MoveTask moves a task to another board column. Any status is reachable
// from any status. Moving to done closes every open timer on the task in
// the same transaction, so a done task can never keep accruing time.
func (b *boardServiceImpl) MoveTask(ctx context.Context, taskID, actorID int64, newStatus domain.Status) error {
	if err := b.taskValidator.ValidateTaskID(taskID); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	if err := b.taskValidator.ValidateStatus(newStatus); err != nil {
		return errors.NewValidationError("invalid task status", err)
	}

	return b.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		dbTask, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if dbTask.UserID != actorID {
			return errors.NewUnauthorizedError("move", fmt.Sprintf("task %d", taskID))
		}

		now := b.clk.Now()

		// Close open timers before the status flips to done.
		if newStatus == domain.StatusDone {
			openEntries, err := tx.ListOpenTimeEntriesForTask(ctx, taskID)
			if err != nil {
				return err
			}
			for _, entry := range openEntries {
				minutes := domain.MinutesBetween(entry.StartTime, now)
				if err := tx.CloseTimeEntry(ctx, entry.ID, now, minutes); err != nil {
					return err
				}
			}
		}

		return tx.UpdateTaskStatus(ctx, taskID, string(newStatus), now)
	})
}

// DeleteTask removes a task. Its time entries are left in place; the
// timesheet keeps counting hours already logged against the task.
func (b *boardServiceImpl) DeleteTask(ctx context.Context, taskID, actorID int64) error {
	if err := b.taskValidator.ValidateTaskID(taskID); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := b.repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if dbTask.UserID != actorID {
		return errors.NewUnauthorizedError("delete", fmt.Sprintf("task %d", taskID))
	}

	return b.repo.DeleteTask(ctx, taskID)
}
