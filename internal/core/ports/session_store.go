package ports

import "context"

// SessionStore maps opaque client-held tokens to authenticated user ids.
// Sessions are server-side records: destroying one immediately invalidates
// the token regardless of what the client still holds.
type SessionStore interface {
	// Create issues a new high-entropy token bound to userID.
	Create(ctx context.Context, userID string) (string, error)

	// Resolve returns the user id bound to token, or
	// domain.ErrSessionNotFound for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (string, error)

	Destroy(ctx context.Context, token string) error
}
