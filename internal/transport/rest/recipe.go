package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/recipe"
)

// recipeService defines the minimal interface needed by RecipeHandler.
type recipeService interface {
	Create(ctx context.Context, foyerID, userID uuid.UUID, input recipe.CreateInput) (*domain.Recipe, error)
	List(ctx context.Context, foyerID uuid.UUID) ([]domain.Recipe, error)
	Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error)
	Update(ctx context.Context, foyerID, id uuid.UUID, input recipe.UpdateInput) (*domain.Recipe, error)
	Vote(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// RecipeHandler serves recipe REST endpoints.
type RecipeHandler struct {
	svc recipeService
	log *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(svc recipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: logger.With("handler", "recipe")}
}

type createRecipeRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
}

type updateRecipeRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
}

// Create handles POST /api/recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req createRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Create(r.Context(), foyerID, userID, recipe.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Recipe created",
		"recipe":  toRecipeResponse(rec),
	})
}

// List handles GET /api/recipes. Recipes come back most voted first.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	recipes, err := h.svc.List(r.Context(), foyerID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, toRecipeResponse(&recipes[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"recipes": responses,
	})
}

// Get handles GET /api/recipes/{recipeID}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	rec, err := h.svc.Get(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OK",
		"recipe":  toRecipeResponse(rec),
	})
}

// Update handles PATCH /api/recipes/{recipeID}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var req updateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Update(r.Context(), foyerID, id, recipe.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Recipe updated",
		"recipe":  toRecipeResponse(rec),
	})
}

// Vote handles POST /api/recipes/{recipeID}/vote.
func (h *RecipeHandler) Vote(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	rec, err := h.svc.Vote(r.Context(), foyerID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Vote recorded",
		"recipe":  toRecipeResponse(rec),
	})
}

// Delete handles DELETE /api/recipes/{recipeID}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	foyerID, _, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := h.svc.Delete(r.Context(), foyerID, id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted"})
}
