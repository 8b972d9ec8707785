package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/errors"
)

func validSignup() SignupInput {
	return SignupInput{
		Username:        "ada",
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	}
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("should register an account with a bcrypt hash", func(t *testing.T) {
		repo := setupRepo(t)
		clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
		service := NewAuthService(repo, clk, bcrypt.MinCost)

		user, err := service.Signup(context.Background(), validSignup())
		require.NoError(t, err)
		assert.Greater(t, user.ID, int64(0))
		assert.Equal(t, "ada", user.Username)
		assert.Equal(t, clk.Now(), user.CreatedAt)

		// The stored hash verifies against the original password.
		stored, err := repo.GetUserByUsername(context.Background(), "ada")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
	})

	t.Run("should reject a duplicate username", func(t *testing.T) {
		repo := setupRepo(t)
		service := NewAuthService(repo, newFakeClock(time.Now()), bcrypt.MinCost)

		_, err := service.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		dup := validSignup()
		dup.Email = "other@example.com"
		_, err = service.Signup(context.Background(), dup)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		repo := setupRepo(t)
		service := NewAuthService(repo, newFakeClock(time.Now()), bcrypt.MinCost)

		_, err := service.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		dup := validSignup()
		dup.Username = "ada2"
		_, err = service.Signup(context.Background(), dup)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	})

	t.Run("should reject invalid details", func(t *testing.T) {
		repo := setupRepo(t)
		service := NewAuthService(repo, newFakeClock(time.Now()), bcrypt.MinCost)

		tests := []struct {
			name   string
			mutate func(*SignupInput)
		}{
			{name: "empty username", mutate: func(in *SignupInput) { in.Username = "" }},
			{name: "short username", mutate: func(in *SignupInput) { in.Username = "ab" }},
			{name: "malformed email", mutate: func(in *SignupInput) { in.Email = "not-an-email" }},
			{name: "short password", mutate: func(in *SignupInput) { in.Password = "short"; in.ConfirmPassword = "short" }},
			{name: "mismatched confirmation", mutate: func(in *SignupInput) { in.ConfirmPassword = "something else" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := validSignup()
				tt.mutate(&input)
				_, err := service.Signup(context.Background(), input)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			})
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	repo := setupRepo(t)
	service := NewAuthService(repo, newFakeClock(time.Now()), bcrypt.MinCost)

	_, err := service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	t.Run("should accept valid credentials", func(t *testing.T) {
		user, err := service.Login(context.Background(), "ada", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "ada", user.Username)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), "ada", "wrong")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthorized))
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("should reject an unknown username with the same message", func(t *testing.T) {
		// Unknown user and wrong password are indistinguishable to a caller.
		_, err := service.Login(context.Background(), "nobody", "correct horse")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthorized))
		assert.Contains(t, err.Error(), "invalid credentials")
	})
}
