package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"taskboard/internal/clock"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const resetCodeDigits = 5

// resetServiceImpl implements the PasswordResetService interface
type resetServiceImpl struct {
	repo          sqlite.Repository
	clk           clock.Clock
	notifier      Notifier
	mapper        *domain.Mapper
	userValidator *validation.UserValidator
	bcryptCost    int
	codeTTL       time.Duration
}

// NewPasswordResetService creates a new PasswordResetService instance
func NewPasswordResetService(repo sqlite.Repository, clk clock.Clock, notifier Notifier, bcryptCost int, codeTTL time.Duration) PasswordResetService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if codeTTL == 0 {
		codeTTL = 10 * time.Minute
	}
	return &resetServiceImpl{
		repo:          repo,
		clk:           clk,
		notifier:      notifier,
		mapper:        domain.NewMapper(),
		userValidator: validation.NewUserValidator(),
		bcryptCost:    bcryptCost,
		codeTTL:       codeTTL,
	}
}

// RequestReset issues a fresh one-time code for the email. All prior
// codes for the email are invalidated in the same transaction, so only
// the newest code ever verifies. Delivery is attempted after the code is
// persisted; a failed delivery never rolls the code back, since the user
// can simply request another.
func (s *resetServiceImpl) RequestReset(ctx context.Context, email string) (*domain.PasswordReset, error) {
	email = strings.TrimSpace(email)
	if err := s.userValidator.ValidateEmail(email); err != nil {
		return nil, errors.NewValidationError("invalid email", err)
	}

	// Only known accounts get codes.
	if _, err := s.repo.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	}

	code, err := generateResetCode()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeExternalService, "generate reset code")
	}

	now := s.clk.Now()
	dbReset := &sqlite.PasswordReset{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.codeTTL),
	}

	err = s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		if err := tx.MarkPasswordResetsUsed(ctx, email); err != nil {
			return err
		}
		return tx.CreatePasswordReset(ctx, dbReset)
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Send(ctx, email, code); err != nil {
		// Tolerated: the persisted code stays valid and the user can
		// request another if this one never arrives.
		logging.Debugf("reset code delivery failed for %s: %v\n", email, err)
	}

	reset := s.mapper.PasswordReset.FromDatabase(*dbReset)
	return &reset, nil
}

// ResetPassword verifies the code against the most recently issued one
// for the email, consumes it and replaces the account's password hash.
func (s *resetServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	email = strings.TrimSpace(email)
	if err := s.userValidator.ValidateEmail(email); err != nil {
		return errors.NewValidationError("invalid email", err)
	}
	if err := s.userValidator.ValidatePasswordChange(newPassword, confirmPassword); err != nil {
		return errors.NewValidationError("invalid new password", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeValidation, "hash password")
	}

	return s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		dbReset, err := tx.GetLatestPasswordReset(ctx, email)
		if err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				return errors.NewUnauthorizedError("password reset", "invalid or expired code")
			}
			return err
		}

		reset := s.mapper.PasswordReset.FromDatabase(*dbReset)
		if reset.Code != code || !reset.IsUsable(s.clk.Now()) {
			return errors.NewUnauthorizedError("password reset", "invalid or expired code")
		}

		if err := tx.MarkPasswordResetUsed(ctx, reset.ID); err != nil {
			return err
		}

		dbUser, err := tx.GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		return tx.UpdateUserPassword(ctx, dbUser.ID, string(hash))
	})
}

// generateResetCode produces a zero-padded 5-digit one-time code
func generateResetCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < resetCodeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", resetCodeDigits, n), nil
}
