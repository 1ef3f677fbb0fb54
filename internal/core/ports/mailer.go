package ports

import "context"

// Mailer dispatches outbound account email. Delivery is a black box: the
// boolean reports success or failure and callers never retry.
type Mailer interface {
	// SendPasswordReset emails a reset link embedding token to the recipient.
	// host is the public host the link should point at.
	SendPasswordReset(ctx context.Context, to, token, host string) bool
}
