package ports

import (
	"context"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// CreateTaskInput carries the fields for a manually created task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	Category    domain.TaskCategory
	EmailFrom   string
}

// TaskService defines task use cases. Every operation is scoped to the
// authenticated requester; a task owned by someone else is reported as not
// found, never as forbidden.
type TaskService interface {
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id, requesterID string) (*domain.Task, error)
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Update(ctx context.Context, id, requesterID string, upd domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id, requesterID string) error
	Stats(ctx context.Context, ownerID string) (domain.TaskStats, error)
	CategoryStats(ctx context.Context, ownerID string) (map[string]int, error)

	// ImportEmail creates a draft task from pasted email text using the
	// subject/body/priority heuristics.
	ImportEmail(ctx context.Context, ownerID, text, emailFrom string) (*domain.Task, error)

	// ImportFile extracts plain text from an uploaded PDF or DOCX and creates
	// a task from it. Extraction happens entirely before the single create.
	ImportFile(ctx context.Context, ownerID, filename, contentType string, data []byte) (*domain.Task, error)
}
