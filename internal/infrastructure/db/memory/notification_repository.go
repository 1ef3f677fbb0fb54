package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[string]*domain.Notification)}
}

func (r *NotificationRepository) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *n
	stored.ID = uuid.NewString()
	stored.Read = false
	r.notifications[stored.ID] = &stored
	c := stored
	return &c, nil
}

func (r *NotificationRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == ownerID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, ownerID string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok || n.UserID != ownerID {
		return nil, domain.ErrNotificationNotFound
	}
	n.Read = true
	c := *n
	return &c, nil
}
