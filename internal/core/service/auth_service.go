package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
)

const bcryptCost = 10
const resetTokenTTL = time.Hour

// AuthService implements registration, login, profile updates and the
// password-reset flow.
type AuthService struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	mailer        ports.Mailer
	logger        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, notifications ports.NotificationRepository, mailer ports.Mailer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, notifications: notifications, mailer: mailer, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials. Unknown email and wrong password collapse into
// the same error so a caller cannot tell which one occurred.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	// Same email pre-check as Register; the store's uniqueness guarantee
	// still backs it up under races.
	if input.Email != nil {
		existing, err := s.users.FindByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, domain.ErrEmailTaken
		}
	}

	upd := domain.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
	}

	// An absent or empty password leaves the stored hash alone.
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}

	return s.users.Update(ctx, userID, upd)
}

// RequestPasswordReset generates and stores a reset token when the email
// matches an account. It reports success either way; only unexpected store
// failures surface as errors.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, host string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}

	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	// Delivery is single-shot: failure is logged, never retried or surfaced.
	if !s.mailer.SendPasswordReset(ctx, user.Email, token, host) {
		s.logger.Warn().Str("user_id", user.ID).Msg("password reset email delivery failed")
	}

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.RedeemResetToken(ctx, token, string(hash), time.Now().UTC())
	if err != nil {
		return err
	}

	if _, err := s.notifications.Create(ctx, &domain.Notification{
		UserID:    user.ID,
		Message:   "Your password has been changed.",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record password change notification")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// randomToken returns a 64-character hex token from 32 random bytes.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
