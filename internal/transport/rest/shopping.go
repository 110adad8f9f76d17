package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/shopping"
)

// shoppingService defines the minimal interface needed by ShoppingHandler.
type shoppingService interface {
	Create(ctx context.Context, foyerID, userID uuid.UUID, input shopping.CreateInput) (*domain.ShoppingItem, error)
	List(ctx context.Context, foyerID uuid.UUID, purchased *bool) ([]domain.ShoppingItem, error)
	Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.ShoppingItem, error)
	Update(ctx context.Context, foyerID, id uuid.UUID, input shopping.UpdateInput) (*domain.ShoppingItem, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// ShoppingHandler serves shopping list REST endpoints.
type ShoppingHandler struct {
	svc shoppingService
	log *slog.Logger
}

// NewShoppingHandler creates a ShoppingHandler.
func NewShoppingHandler(svc shoppingService, logger *slog.Logger) *ShoppingHandler {
	return &ShoppingHandler{svc: svc, log: logger.With("handler", "shopping")}
}

type createItemRequest struct {
	Name         string  `json:"name"`
	Quantity     *string `json:"quantity"`
	AssignedToID *string `json:"assignedToId"`
}

type updateItemRequest struct {
	Name         *string `json:"name"`
	Quantity     *string `json:"quantity"`
	Purchased    *bool   `json:"purchased"`
	AssignedToID *string `json:"assignedToId"`
}

// Create handles POST /api/shopping.
func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignedTo, err := parseOptionalUUID(req.AssignedToID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assignedToId")
		return
	}

	item, err := h.svc.Create(r.Context(), foyerID, userID, shopping.CreateInput{
		Name:         req.Name,
		Quantity:     req.Quantity,
		AssignedToID: assignedTo,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Item added",
		"item":    toItemResponse(item),
	})
}

// List handles GET /api/shopping?purchased=...
func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	purchased, err := parseOptionalBool(r.URL.Query().Get("purchased"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid purchased")
		return
	}

	items, err := h.svc.List(r.Context(), foyerID, purchased)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	responses := make([]itemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toItemResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"items":   responses,
	})
}

// Get handles GET /api/shopping/{itemID}.
func (h *ShoppingHandler) Get(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.Get(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"item":    toItemResponse(item),
	})
}

// Update handles PATCH /api/shopping/{itemID}.
func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignedTo, err := parseOptionalUUID(req.AssignedToID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assignedToId")
		return
	}

	item, err := h.svc.Update(r.Context(), foyerID, id, shopping.UpdateInput{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Purchased:    req.Purchased,
		AssignedToID: assignedTo,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Item updated",
		"item":    toItemResponse(item),
	})
}

// Delete handles DELETE /api/shopping/{itemID}.
func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.svc.Delete(r.Context(), foyerID, id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}
