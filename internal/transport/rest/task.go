package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/task"
)

// taskService defines the minimal interface needed by TaskHandler.
type taskService interface {
	Create(ctx context.Context, foyerID, userID uuid.UUID, input task.CreateInput) (*domain.Task, error)
	List(ctx context.Context, foyerID uuid.UUID, completed *bool) ([]domain.Task, error)
	Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, foyerID, id uuid.UUID, input task.UpdateInput) (*domain.Task, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// TaskHandler serves task REST endpoints.
type TaskHandler struct {
	svc taskService
	log *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(svc taskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: logger.With("handler", "task")}
}

type createTaskRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	AssignedToID *string `json:"assignedToId"`
	Points       int     `json:"points"`
}

type updateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	AssignedToID *string `json:"assignedToId"`
	Points       *int    `json:"points"`
	Completed    *bool   `json:"completed"`
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignedTo, err := parseOptionalUUID(req.AssignedToID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assignedToId")
		return
	}

	t, err := h.svc.Create(r.Context(), foyerID, userID, task.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: assignedTo,
		Points:       req.Points,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Task created",
		"task":    toTaskResponse(t),
	})
}

// List handles GET /api/tasks?completed=...
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	completed, err := parseOptionalBool(r.URL.Query().Get("completed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid completed")
		return
	}

	tasks, err := h.svc.List(r.Context(), foyerID, completed)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	responses := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, toTaskResponse(&tasks[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"tasks":   responses,
	})
}

// Get handles GET /api/tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	t, err := h.svc.Get(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"task":    toTaskResponse(t),
	})
}

// Update handles PATCH /api/tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignedTo, err := parseOptionalUUID(req.AssignedToID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assignedToId")
		return
	}

	t, err := h.svc.Update(r.Context(), foyerID, id, task.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: assignedTo,
		Points:       req.Points,
		Completed:    req.Completed,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task updated",
		"task":    toTaskResponse(t),
	})
}

// Delete handles DELETE /api/tasks/{taskID}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.svc.Delete(r.Context(), foyerID, id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseOptionalBool parses a query flag; "" means not provided.
func parseOptionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
