package service

import (
	"context"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
)

// NotificationService exposes per-user notifications to the API surface.
type NotificationService struct {
	notifications ports.NotificationRepository
}

func NewNotificationService(notifications ports.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, ownerID string) ([]domain.Notification, error) {
	return s.notifications.ListByOwner(ctx, ownerID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, ownerID string) (*domain.Notification, error) {
	return s.notifications.MarkRead(ctx, id, ownerID)
}
