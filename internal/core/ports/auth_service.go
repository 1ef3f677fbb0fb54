package ports

import (
	"context"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// UpdateProfileInput is a partial profile update. A nil or empty Password
// leaves the stored hash untouched.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthService defines account and credential use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)

	// RequestPasswordReset never reveals whether the email exists; it returns
	// an error only on unexpected store failures.
	RequestPasswordReset(ctx context.Context, email, host string) error

	ResetPassword(ctx context.Context, token, password string) error
}
