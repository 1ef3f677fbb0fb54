package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inboxflow/inboxflow-api/internal/api/metrics"
	"github.com/inboxflow/inboxflow-api/internal/core/domain"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
	"github.com/inboxflow/inboxflow-api/internal/export"
)

// TaskHandler exposes task CRUD, statistics, the two import paths and the
// document exports. Every route sits behind the Session middleware.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"required,oneof=high medium low"`
	Category    string `json:"category" validate:"required,oneof=brand-collaboration content-request crisis-management general-inquiry"`
	EmailFrom   string `json:"emailFrom"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=high medium low"`
	Category    *string `json:"category" validate:"omitempty,oneof=brand-collaboration content-request crisis-management general-inquiry email"`
	EmailFrom   *string `json:"emailFrom"`
	Completed   *bool   `json:"completed"`
}

// List returns the requester's tasks, newest first.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  domain.Task
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create adds a manually entered task.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	task, err := h.service.Create(c.Request().Context(), userID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		Category:    domain.TaskCategory(req.Category),
		EmailFrom:   req.EmailFrom,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues("manual", string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// Update applies a partial edit. A task owned by someone else is reported as
// not found.
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	upd := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		EmailFrom:   req.EmailFrom,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		upd.Priority = &p
	}
	if req.Category != nil {
		cat := domain.TaskCategory(*req.Category)
		upd.Category = &cat
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task owned by the requester.
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// Stats returns the owner's aggregate counts.
func (h *TaskHandler) Stats(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Categories returns per-category counts. Absent categories are omitted, not
// zero-filled; the UI fills the gaps.
func (h *TaskHandler) Categories(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.CategoryStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

type importEmailRequest struct {
	Text      string `json:"text" validate:"required"`
	EmailFrom string `json:"emailFrom"`
}

// ImportEmail creates a task from pasted email text.
//
// @Summary      Import a task from pasted email text
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      importEmailRequest  true  "Raw email text"
// @Success      201   {object}  domain.Task
// @Router       /api/tasks/import-email [post]
func (h *TaskHandler) ImportEmail(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req importEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	task, err := h.service.ImportEmail(c.Request().Context(), userID, req.Text, req.EmailFrom)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("email", "error").Inc()
		return err
	}

	metrics.ImportsTotal.WithLabelValues("email", "ok").Inc()
	metrics.TasksCreatedTotal.WithLabelValues("email", string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// ImportFile creates a task from an uploaded PDF or DOCX.
//
// @Summary      Import a task from an uploaded document
// @Tags         tasks
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF or DOCX file"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/tasks/import-file [post]
func (h *TaskHandler) ImportFile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded."})
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	task, err := h.service.ImportFile(c.Request().Context(), userID, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType):
			metrics.ImportsTotal.WithLabelValues("file", "unsupported_type").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unsupported file type."})
		case errors.Is(err, domain.ErrFileProcessing):
			metrics.ImportsTotal.WithLabelValues("file", "error").Inc()
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process file."})
		}
		return err
	}

	metrics.ImportsTotal.WithLabelValues("file", "ok").Inc()
	metrics.TasksCreatedTotal.WithLabelValues("file", string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// ExportPDF streams the task rendered as a PDF attachment.
func (h *TaskHandler) ExportPDF(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
		}
		return err
	}

	data, err := export.PDF(task)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export task as PDF."})
	}

	metrics.ExportsTotal.WithLabelValues("pdf").Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=task-%s.pdf", task.ID))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// ExportDOCX streams the task rendered as a DOCX attachment.
func (h *TaskHandler) ExportDOCX(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
		}
		return err
	}

	data, err := export.DOCX(task)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export task as DOCX."})
	}

	metrics.ExportsTotal.WithLabelValues("docx").Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="task-%s.docx"`, task.ID))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}
