package service

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
	"github.com/inboxflow/inboxflow-api/internal/importer"
	"github.com/inboxflow/inboxflow-api/internal/infrastructure/db/memory"
)

// docxFixture builds a one-paragraph Word document in memory.
func docxFixture(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}

	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func newTaskService() (*TaskService, *memory.NotificationRepository) {
	notifications := memory.NewNotificationRepository()
	svc := NewTaskService(memory.NewTaskRepository(), notifications, zerolog.Nop())
	return svc, notifications
}

func createTask(t *testing.T, svc *TaskService, ownerID, title string) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), ownerID, ports.CreateTaskInput{
		Title:    title,
		Priority: domain.PriorityMedium,
		Category: domain.CategoryGeneralInquiry,
	})
	if err != nil {
		t.Fatalf("Create(%q) returned error: %v", title, err)
	}
	return task
}

func TestTaskService_Create_RejectsUnknownPriority(t *testing.T) {
	svc, _ := newTaskService()

	_, err := svc.Create(context.Background(), "u1", ports.CreateTaskInput{
		Title:    "bad",
		Priority: "critical",
		Category: domain.CategoryGeneralInquiry,
	})
	if err != domain.ErrInvalidPriority {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

// "email" is reserved for imported tasks and cannot be chosen at creation.
func TestTaskService_Create_RejectsEmailCategory(t *testing.T) {
	svc, _ := newTaskService()

	_, err := svc.Create(context.Background(), "u1", ports.CreateTaskInput{
		Title:    "bad",
		Priority: domain.PriorityMedium,
		Category: domain.CategoryEmail,
	})
	if err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestTaskService_List_NewestFirst(t *testing.T) {
	svc, _ := newTaskService()
	createTask(t, svc, "u1", "first")
	createTask(t, svc, "u1", "second")
	createTask(t, svc, "u1", "third")

	tasks, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"third", "second", "first"} {
		if tasks[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, tasks[i].Title)
		}
	}
}

func TestTaskService_List_ScopedToOwner(t *testing.T) {
	svc, _ := newTaskService()
	createTask(t, svc, "u1", "mine")
	createTask(t, svc, "u2", "theirs")

	tasks, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "mine" {
		t.Fatalf("expected only the owner's task, got %+v", tasks)
	}
}

// Tasks owned by another user behave exactly like missing tasks.
func TestTaskService_ForeignTaskIsNotFound(t *testing.T) {
	svc, _ := newTaskService()
	task := createTask(t, svc, "u1", "private")

	if _, err := svc.Get(context.Background(), task.ID, "u2"); err != domain.ErrTaskNotFound {
		t.Fatalf("Get: expected ErrTaskNotFound, got %v", err)
	}

	done := true
	if _, err := svc.Update(context.Background(), task.ID, "u2", domain.TaskUpdate{Completed: &done}); err != domain.ErrTaskNotFound {
		t.Fatalf("Update: expected ErrTaskNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), task.ID, "u2"); err != domain.ErrTaskNotFound {
		t.Fatalf("Delete: expected ErrTaskNotFound, got %v", err)
	}

	// The failed attempts must leave the task untouched.
	got, err := svc.Get(context.Background(), task.ID, "u1")
	if err != nil {
		t.Fatalf("owner lost access to task: %v", err)
	}
	if got.Completed {
		t.Fatalf("foreign update modified the task")
	}
}

// A manual task cannot be edited into the reserved "email" category, while
// an imported task may keep it through an update.
func TestTaskService_Update_EmailCategoryCarryOverOnly(t *testing.T) {
	svc, _ := newTaskService()

	manual := createTask(t, svc, "u1", "manual task")
	email := domain.CategoryEmail
	if _, err := svc.Update(context.Background(), manual.ID, "u1", domain.TaskUpdate{Category: &email}); err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	imported, err := svc.ImportEmail(context.Background(), "u1", "Subject: hi\n\nbody", "x@example.com")
	if err != nil {
		t.Fatalf("ImportEmail returned error: %v", err)
	}
	title := "renamed"
	updated, err := svc.Update(context.Background(), imported.ID, "u1", domain.TaskUpdate{Title: &title, Category: &email})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Category != domain.CategoryEmail || updated.Title != "renamed" {
		t.Fatalf("carry-over update failed: %+v", updated)
	}
}

func TestTaskService_Update_CompletionNotifies(t *testing.T) {
	svc, notifications := newTaskService()
	task := createTask(t, svc, "u1", "finish report")

	done := true
	updated, err := svc.Update(context.Background(), task.ID, "u1", domain.TaskUpdate{Completed: &done})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("task not marked completed")
	}

	list, _ := notifications.ListByOwner(context.Background(), "u1")
	if len(list) != 1 || list[0].Message != "Task completed: finish report" {
		t.Fatalf("expected completion notification, got %+v", list)
	}

	// Re-completing an already completed task stays silent.
	if _, err := svc.Update(context.Background(), task.ID, "u1", domain.TaskUpdate{Completed: &done}); err != nil {
		t.Fatalf("second Update returned error: %v", err)
	}
	list, _ = notifications.ListByOwner(context.Background(), "u1")
	if len(list) != 1 {
		t.Fatalf("expected no extra notification, got %d", len(list))
	}
}

func TestTaskService_Stats(t *testing.T) {
	svc, _ := newTaskService()

	high, err := svc.Create(context.Background(), "u1", ports.CreateTaskInput{
		Title:    "urgent one",
		Priority: domain.PriorityHigh,
		Category: domain.CategoryCrisisManagement,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	createTask(t, svc, "u1", "medium one")
	createTask(t, svc, "u1", "medium two")
	createTask(t, svc, "u2", "someone else")

	done := true
	if _, err := svc.Update(context.Background(), high.ID, "u1", domain.TaskUpdate{Completed: &done}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stats, err := svc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 3 || stats.High != 1 || stats.Completed != 1 || stats.Pending != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Pending != stats.Total-stats.Completed {
		t.Fatalf("pending must equal total minus completed: %+v", stats)
	}
}

func TestTaskService_CategoryStats(t *testing.T) {
	svc, _ := newTaskService()
	createTask(t, svc, "u1", "a")
	createTask(t, svc, "u1", "b")
	if _, err := svc.ImportEmail(context.Background(), "u1", "Subject: hi\n\nbody", "x@example.com"); err != nil {
		t.Fatalf("ImportEmail returned error: %v", err)
	}

	counts, err := svc.CategoryStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CategoryStats returned error: %v", err)
	}
	if counts[string(domain.CategoryGeneralInquiry)] != 2 {
		t.Fatalf("expected 2 general-inquiry tasks, got %+v", counts)
	}
	if counts[string(domain.CategoryEmail)] != 1 {
		t.Fatalf("expected 1 email task, got %+v", counts)
	}
}

func TestTaskService_ImportEmail(t *testing.T) {
	svc, notifications := newTaskService()

	text := "Subject: Contract renewal\n\nThis is urgent, please review."
	task, err := svc.ImportEmail(context.Background(), "u1", text, "legal@example.com")
	if err != nil {
		t.Fatalf("ImportEmail returned error: %v", err)
	}

	if task.Title != "Contract renewal" {
		t.Fatalf("unexpected title: %q", task.Title)
	}
	if task.Priority != domain.PriorityHigh {
		t.Fatalf("expected high priority, got %q", task.Priority)
	}
	if task.Category != domain.CategoryEmail {
		t.Fatalf("expected email category, got %q", task.Category)
	}
	if task.EmailFrom != "legal@example.com" {
		t.Fatalf("unexpected emailFrom: %q", task.EmailFrom)
	}

	list, _ := notifications.ListByOwner(context.Background(), "u1")
	if len(list) != 1 || list[0].Message != "New task imported from email: Contract renewal" {
		t.Fatalf("expected import notification, got %+v", list)
	}
}

func TestTaskService_ImportFile(t *testing.T) {
	svc, notifications := newTaskService()

	data := docxFixture(t, "This whole document is URGENT! Drop everything.")
	task, err := svc.ImportFile(context.Background(), "u1", "briefing.docx", importer.MimeDOCX, data)
	if err != nil {
		t.Fatalf("ImportFile returned error: %v", err)
	}

	if task.Title != "Imported from: briefing.docx" {
		t.Fatalf("unexpected title: %q", task.Title)
	}
	// The file path applies no urgency heuristics.
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium priority, got %q", task.Priority)
	}
	if task.Category != domain.CategoryGeneralInquiry {
		t.Fatalf("expected general-inquiry category, got %q", task.Category)
	}
	if !strings.Contains(task.Description, "URGENT") {
		t.Fatalf("description missing file text: %q", task.Description)
	}

	list, _ := notifications.ListByOwner(context.Background(), "u1")
	if len(list) != 1 || list[0].Message != "New task imported from file: briefing.docx" {
		t.Fatalf("expected import notification, got %+v", list)
	}
}

func TestTaskService_ImportFile_UnsupportedType(t *testing.T) {
	svc, _ := newTaskService()

	_, err := svc.ImportFile(context.Background(), "u1", "notes.txt", "text/plain", []byte("plain text"))
	if err != domain.ErrUnsupportedFileType {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}
