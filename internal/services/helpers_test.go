package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/repository/sqlite"
)

// fakeClock serves a controllable time to the services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeNotifier records deliveries and can simulate failure.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string // codes in delivery order
	fail error
}

func (n *fakeNotifier) Send(ctx context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, code)
	return nil
}

func (n *fakeNotifier) lastCode() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return ""
	}
	return n.sent[len(n.sent)-1]
}

func setupRepo(t *testing.T) *sqlite.SQLiteRepository {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo sqlite.Repository, username, fullName, email string) *sqlite.User {
	user := &sqlite.User{
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func seedTask(t *testing.T, repo sqlite.Repository, userID int64, title, status string, createdAt time.Time) *sqlite.Task {
	task := &sqlite.Task{
		Title:     title,
		Priority:  "medium",
		Status:    status,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.CreateTask(context.Background(), task))
	return task
}
