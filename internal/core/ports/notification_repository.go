package ports

import (
	"context"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)

	// ListByOwner returns the owner's notifications, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Notification, error)

	// MarkRead flips the read flag on a notification owned by ownerID.
	// The ownership filter is part of the update so a foreign id behaves
	// exactly like a missing one (domain.ErrNotificationNotFound).
	MarkRead(ctx context.Context, id, ownerID string) (*domain.Notification, error)
}
