package ports

import (
	"context"
	"time"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error)

	// SetResetToken stores a password-reset token and its expiry on the user.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error

	// RedeemResetToken atomically finds the user holding an unexpired token,
	// stores the new password hash and clears the token fields. The
	// check-and-clear must be a single conditional update so two concurrent
	// redemptions of the same token cannot both succeed. Returns
	// domain.ErrInvalidResetToken when no user matches.
	RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error)
}
