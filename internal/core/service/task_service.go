package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
	"github.com/inboxflow/inboxflow-api/internal/importer"
)

// TaskService implements task CRUD, statistics and the two import paths.
// Every read or mutation of a single task verifies ownership first and
// reports a foreign task as not found.
type TaskService struct {
	tasks         ports.TaskRepository
	notifications ports.NotificationRepository
	logger        zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, notifications ports.NotificationRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, notifications: notifications, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	if !domain.IsValidPriority(input.Priority) {
		return nil, domain.ErrInvalidPriority
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, domain.ErrInvalidCategory
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		EmailFrom:   input.EmailFrom,
		UserID:      ownerID,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", ownerID).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id, requesterID string) (*domain.Task, error) {
	return s.owned(ctx, id, requesterID)
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Update(ctx context.Context, id, requesterID string, upd domain.TaskUpdate) (*domain.Task, error) {
	task, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if upd.Priority != nil && !domain.IsValidPriority(*upd.Priority) {
		return nil, domain.ErrInvalidPriority
	}
	// "email" is a carry-over only: a task that already has it may keep it,
	// but no task can be switched into it by an edit.
	if upd.Category != nil && !domain.IsValidCategory(*upd.Category) {
		if *upd.Category != domain.CategoryEmail || task.Category != domain.CategoryEmail {
			return nil, domain.ErrInvalidCategory
		}
	}

	updated, err := s.tasks.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if upd.Completed != nil && *upd.Completed && !task.Completed {
		s.notify(ctx, requesterID, "Task completed: "+updated.Title)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}

	removed, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrTaskNotFound
	}

	s.logger.Info().Str("task_id", id).Str("user_id", requesterID).Msg("task deleted")
	return nil
}

func (s *TaskService) Stats(ctx context.Context, ownerID string) (domain.TaskStats, error) {
	return s.tasks.Stats(ctx, ownerID)
}

func (s *TaskService) CategoryStats(ctx context.Context, ownerID string) (map[string]int, error) {
	return s.tasks.CategoryStats(ctx, ownerID)
}

func (s *TaskService) ImportEmail(ctx context.Context, ownerID, text, emailFrom string) (*domain.Task, error) {
	draft := importer.ParseEmail(text)

	task := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Category:    draft.Category,
		EmailFrom:   emailFrom,
		UserID:      ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ownerID, "New task imported from email: "+created.Title)
	s.logger.Info().Str("task_id", created.ID).Str("user_id", ownerID).Msg("task imported from email text")
	return created, nil
}

func (s *TaskService) ImportFile(ctx context.Context, ownerID, filename, contentType string, data []byte) (*domain.Task, error) {
	// Extraction runs to completion before the single repository create;
	// no store interaction happens while parsing.
	text, err := importer.ExtractText(contentType, data)
	if err != nil {
		return nil, err
	}

	draft := importer.FileDraft(filename, text)
	task := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Category:    draft.Category,
		UserID:      ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ownerID, "New task imported from file: "+filename)
	s.logger.Info().Str("task_id", created.ID).Str("user_id", ownerID).Str("file", filename).Msg("task imported from file")
	return created, nil
}

// owned loads a task and folds an ownership mismatch into not-found so the
// existence of other users' tasks never leaks.
func (s *TaskService) owned(ctx context.Context, id, requesterID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != requesterID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// notify records a notification without failing the triggering operation.
func (s *TaskService) notify(ctx context.Context, userID, message string) {
	if _, err := s.notifications.Create(ctx, &domain.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record notification")
	}
}
