package ports

import (
	"context"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// NotificationService defines notification use cases for the API surface.
type NotificationService interface {
	List(ctx context.Context, ownerID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, ownerID string) (*domain.Notification, error)
}
