package memory

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

// Tasks created in the same instant still list in a stable order: id
// descending breaks the timestamp tie.
func TestTaskRepository_ListByOwner_TimestampTieBreak(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ids := make([]string, 0, 5)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		task, err := repo.Create(ctx, &domain.Task{
			Title:     title,
			Priority:  domain.PriorityMedium,
			Category:  domain.CategoryGeneralInquiry,
			UserID:    "u1",
			CreatedAt: createdAt,
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		ids = append(ids, task.ID)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	for run := 0; run < 3; run++ {
		tasks, err := repo.ListByOwner(ctx, "u1")
		if err != nil {
			t.Fatalf("ListByOwner returned error: %v", err)
		}
		if len(tasks) != len(ids) {
			t.Fatalf("expected %d tasks, got %d", len(ids), len(tasks))
		}
		for i, want := range ids {
			if tasks[i].ID != want {
				t.Fatalf("run %d position %d: expected id %s, got %s", run, i, want, tasks[i].ID)
			}
		}
	}
}

func TestTaskRepository_ListByOwner_NewestFirstBeforeTieBreak(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	older, err := repo.Create(ctx, &domain.Task{
		Title: "older", Priority: domain.PriorityMedium,
		Category: domain.CategoryGeneralInquiry, UserID: "u1",
		CreatedAt: base,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	newer, err := repo.Create(ctx, &domain.Task{
		Title: "newer", Priority: domain.PriorityMedium,
		Category: domain.CategoryGeneralInquiry, UserID: "u1",
		CreatedAt: base.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	tasks, err := repo.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != newer.ID || tasks[1].ID != older.ID {
		t.Fatalf("expected [newer older], got %+v", tasks)
	}
}
