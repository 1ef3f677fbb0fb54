package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]*domain.Task)}
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *task
	stored.ID = uuid.NewString()
	r.tasks[stored.ID] = &stored
	c := stored
	return &c, nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}

	// Newest first; id tie-break keeps the order stable when timestamps collide.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *TaskRepository) Update(_ context.Context, id string, upd domain.TaskUpdate) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.Category != nil {
		t.Category = *upd.Category
	}
	if upd.EmailFrom != nil {
		t.EmailFrom = *upd.EmailFrom
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}

	c := *t
	return &c, nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *TaskRepository) Stats(_ context.Context, ownerID string) (domain.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats domain.TaskStats
	for _, t := range r.tasks {
		if t.UserID != ownerID {
			continue
		}
		stats.Total++
		if t.Priority == domain.PriorityHigh {
			stats.High++
		}
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

func (r *TaskRepository) CategoryStats(_ context.Context, ownerID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]int)
	for _, t := range r.tasks {
		if t.UserID == ownerID {
			stats[string(t.Category)]++
		}
	}
	return stats, nil
}
