package domain

import (
	"taskboard/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:             domainTask.ID,
		Title:          domainTask.Title,
		Description:    domainTask.Description,
		Priority:       string(domainTask.Priority),
		EstimatedHours: domainTask.EstimatedHours,
		Day:            domainTask.Day,
		Status:         string(domainTask.Status),
		UserID:         domainTask.UserID,
		CreatedAt:      domainTask.CreatedAt,
		UpdatedAt:      domainTask.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:             dbTask.ID,
		Title:          dbTask.Title,
		Description:    dbTask.Description,
		Priority:       Priority(dbTask.Priority),
		EstimatedHours: dbTask.EstimatedHours,
		Day:            dbTask.Day,
		Status:         Status(dbTask.Status),
		UserID:         dbTask.UserID,
		CreatedAt:      dbTask.CreatedAt,
		UpdatedAt:      dbTask.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(domainEntry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              domainEntry.ID,
		TaskID:          domainEntry.TaskID,
		UserID:          domainEntry.UserID,
		StartTime:       domainEntry.StartTime,
		EndTime:         domainEntry.EndTime,
		DurationMinutes: domainEntry.DurationMinutes,
		WorkDate:        domainEntry.WorkDate,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:              dbEntry.ID,
		TaskID:          dbEntry.TaskID,
		UserID:          dbEntry.UserID,
		StartTime:       dbEntry.StartTime,
		EndTime:         dbEntry.EndTime,
		DurationMinutes: dbEntry.DurationMinutes,
		WorkDate:        dbEntry.WorkDate,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	domainEntries := make([]TimeEntry, len(dbEntries))
	for i, entry := range dbEntries {
		domainEntries[i] = m.FromDatabase(*entry)
	}
	return domainEntries
}

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(domainUser User) sqlite.User {
	return sqlite.User{
		ID:           domainUser.ID,
		Username:     domainUser.Username,
		FullName:     domainUser.FullName,
		Email:        domainUser.Email,
		PasswordHash: domainUser.PasswordHash,
		CreatedAt:    domainUser.CreatedAt,
	}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(dbUser sqlite.User) User {
	return User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		FullName:     dbUser.FullName,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		CreatedAt:    dbUser.CreatedAt,
	}
}

// PasswordResetMapper handles conversion between domain and database PasswordReset models.
type PasswordResetMapper struct{}

// NewPasswordResetMapper creates a new PasswordResetMapper instance.
func NewPasswordResetMapper() *PasswordResetMapper {
	return &PasswordResetMapper{}
}

// ToDatabase converts a domain PasswordReset to a database PasswordReset.
func (m *PasswordResetMapper) ToDatabase(domainReset PasswordReset) sqlite.PasswordReset {
	return sqlite.PasswordReset{
		ID:        domainReset.ID,
		Email:     domainReset.Email,
		Code:      domainReset.Code,
		CreatedAt: domainReset.CreatedAt,
		ExpiresAt: domainReset.ExpiresAt,
		Used:      domainReset.Used,
	}
}

// FromDatabase converts a database PasswordReset to a domain PasswordReset.
func (m *PasswordResetMapper) FromDatabase(dbReset sqlite.PasswordReset) PasswordReset {
	return PasswordReset{
		ID:        dbReset.ID,
		Email:     dbReset.Email,
		Code:      dbReset.Code,
		CreatedAt: dbReset.CreatedAt,
		ExpiresAt: dbReset.ExpiresAt,
		Used:      dbReset.Used,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task          *TaskMapper
	TimeEntry     *TimeEntryMapper
	User          *UserMapper
	PasswordReset *PasswordResetMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:          NewTaskMapper(),
		TimeEntry:     NewTimeEntryMapper(),
		User:          NewUserMapper(),
		PasswordReset: NewPasswordResetMapper(),
	}
}
