package services

import (
	"context"
	"strings"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	repo          sqlite.Repository
	clk           clock.Clock
	mapper        *domain.Mapper
	userValidator *validation.UserValidator
	bcryptCost    int
}

// NewAuthService creates a new AuthService instance
func NewAuthService(repo sqlite.Repository, clk clock.Clock, bcryptCost int) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authServiceImpl{
		repo:          repo,
		clk:           clk,
		mapper:        domain.NewMapper(),
		userValidator: validation.NewUserValidator(),
		bcryptCost:    bcryptCost,
	}
}

// Signup registers a new account with a bcrypt-hashed password
func (a *authServiceImpl) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if err := a.userValidator.ValidateSignup(username, email, input.Password, input.ConfirmPassword); err != nil {
		return nil, errors.NewValidationError("invalid signup details", err)
	}

	// Username and email must be unique.
	if _, err := a.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, errors.NewConflictError("user", "username already exists")
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if _, err := a.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, errors.NewConflictError("user", "email already exists")
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), a.bcryptCost)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeValidation, "hash password")
	}

	dbUser := &sqlite.User{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    a.clk.Now(),
	}

	if err := a.repo.CreateUser(ctx, dbUser); err != nil {
		return nil, err
	}

	user := a.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// Login checks a username/password pair and returns the account
func (a *authServiceImpl) Login(ctx context.Context, username, password string) (*domain.User, error) {
	dbUser, err := a.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewUnauthorizedError("login", "invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewUnauthorizedError("login", "invalid credentials")
	}

	user := a.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// GetUser retrieves an account by ID
func (a *authServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, errors.NewValidationError("invalid user ID", nil)
	}

	dbUser, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user := a.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// ListUsers retrieves all accounts
func (a *authServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	dbUsers, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, len(dbUsers))
	for i, dbUser := range dbUsers {
		users[i] = a.mapper.User.FromDatabase(*dbUser)
	}
	return users, nil
}
