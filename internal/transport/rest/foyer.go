package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/foyer"
	"github.com/foyerapp/foyer-backend/pkg/ctxutil"
)

// foyerService defines the minimal interface needed by FoyerHandler.
type foyerService interface {
	Create(ctx context.Context, userID uuid.UUID, input foyer.CreateInput) (*domain.Foyer, error)
	Join(ctx context.Context, userID uuid.UUID, input foyer.JoinInput) (*domain.Foyer, error)
	Get(ctx context.Context, foyerID uuid.UUID) (*domain.Foyer, error)
	ActiveFoyerID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	UserFoyers(ctx context.Context, userID uuid.UUID) ([]domain.Foyer, error)
	Leaderboard(ctx context.Context, foyerID uuid.UUID) ([]domain.LeaderboardEntry, error)
}

// FoyerHandler serves foyer REST endpoints.
type FoyerHandler struct {
	svc foyerService
	log *slog.Logger
}

// NewFoyerHandler creates a FoyerHandler.
func NewFoyerHandler(svc foyerService, logger *slog.Logger) *FoyerHandler {
	return &FoyerHandler{svc: svc, log: logger.With("handler", "foyer")}
}

type createFoyerRequest struct {
	Name string `json:"name"`
	Rule string `json:"rule"`
}

type joinFoyerRequest struct {
	Code       string `json:"code"`
	AcceptRule bool   `json:"acceptRule"`
}

// Create handles POST /api/foyer (also mounted at /api/foyer/create).
func (h *FoyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createFoyerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Create(r.Context(), userID, foyer.CreateInput{
		Name: req.Name,
		Rule: req.Rule,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Foyer created",
		"foyer":   toFoyerResponse(f),
	})
}

// Join handles POST /api/foyer/join.
func (h *FoyerHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req joinFoyerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Join(r.Context(), userID, foyer.JoinInput{
		Code:       req.Code,
		AcceptRule: req.AcceptRule,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Foyer joined",
		"foyer":   toFoyerResponse(f),
	})
}

// Me handles GET /api/foyer/me: the caller's active foyer.
func (h *FoyerHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	foyerID, err := h.svc.ActiveFoyerID(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	f, err := h.svc.Get(r.Context(), foyerID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"foyer":   toFoyerResponse(f),
	})
}

// UserFoyers handles GET /api/foyer (also mounted at /api/foyer/user-foyers).
func (h *FoyerHandler) UserFoyers(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	foyers, err := h.svc.UserFoyers(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]foyerResponse, 0, len(foyers))
	for i := range foyers {
		out = append(out, toFoyerResponse(&foyers[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"foyers":  out,
	})
}

// Leaderboard handles GET /api/leaderboard.
func (h *FoyerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	foyerID, ok := ctxutil.FoyerIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "no foyer membership")
		return
	}

	entries, err := h.svc.Leaderboard(r.Context(), foyerID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "OK",
		"leaderboard": toLeaderboardResponse(entries),
	})
}
