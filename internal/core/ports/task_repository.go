package ports

import (
	"context"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// TaskRepository defines the persistence contract for task records.
// Ownership checks live in the service layer; repositories operate on ids.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// ListByOwner returns the owner's tasks ordered by creation time
	// descending, with a stable id tie-break when timestamps collide.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)

	Update(ctx context.Context, id string, upd domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task and reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)

	Stats(ctx context.Context, ownerID string) (domain.TaskStats, error)

	// CategoryStats returns counts keyed by category. Only categories present
	// in the owner's tasks appear as keys; absent categories are not
	// zero-filled.
	CategoryStats(ctx context.Context, ownerID string) (map[string]int, error)
}
