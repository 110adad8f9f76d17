package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/travel"
)

// travelService defines the minimal interface needed by TravelHandler.
type travelService interface {
	Create(ctx context.Context, foyerID, userID uuid.UUID, input travel.CreateInput) (*domain.TravelIdea, error)
	List(ctx context.Context, foyerID uuid.UUID) ([]domain.TravelIdea, error)
	Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error)
	Update(ctx context.Context, foyerID, id uuid.UUID, input travel.UpdateInput) (*domain.TravelIdea, error)
	Vote(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// TravelHandler serves travel idea REST endpoints.
type TravelHandler struct {
	svc travelService
	log *slog.Logger
}

// NewTravelHandler creates a TravelHandler.
func NewTravelHandler(svc travelService, logger *slog.Logger) *TravelHandler {
	return &TravelHandler{svc: svc, log: logger.With("handler", "travel")}
}

type createIdeaRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

type updateIdeaRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

// Create handles POST /api/travel.
func (h *TravelHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req createIdeaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	idea, err := h.svc.Create(r.Context(), foyerID, userID, travel.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Idea created",
		"idea":    toIdeaResponse(idea),
	})
}

// List handles GET /api/travel. Ideas come back most voted first.
func (h *TravelHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	ideas, err := h.svc.List(r.Context(), foyerID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	responses := make([]ideaResponse, 0, len(ideas))
	for i := range ideas {
		responses = append(responses, toIdeaResponse(&ideas[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"ideas":   responses,
	})
}

// Get handles GET /api/travel/{ideaID}.
func (h *TravelHandler) Get(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "ideaID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	idea, err := h.svc.Get(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"idea":    toIdeaResponse(idea),
	})
}

// Update handles PATCH /api/travel/{ideaID}.
func (h *TravelHandler) Update(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "ideaID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req updateIdeaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	idea, err := h.svc.Update(r.Context(), foyerID, id, travel.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Idea updated",
		"idea":    toIdeaResponse(idea),
	})
}

// Vote handles POST /api/travel/{ideaID}/vote.
func (h *TravelHandler) Vote(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "ideaID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	idea, err := h.svc.Vote(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Vote recorded",
		"idea":    toIdeaResponse(idea),
	})
}

// Delete handles DELETE /api/travel/{ideaID}.
func (h *TravelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "ideaID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	if err := h.svc.Delete(r.Context(), foyerID, id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Idea deleted"})
}
