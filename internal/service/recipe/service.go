// Package recipe implements foyer-shared recipes with voting.
package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// recipeRepo defines the repository interface needed by the service.
type recipeRepo interface {
	Create(ctx context.Context, rec *domain.Recipe) (*domain.Recipe, error)
	GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error)
	ListByFoyer(ctx context.Context, foyerID uuid.UUID) ([]domain.Recipe, error)
	Update(ctx context.Context, rec *domain.Recipe) (*domain.Recipe, error)
	IncrementVotes(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// Service implements recipe operations.
type Service struct {
	log     *slog.Logger
	recipes recipeRepo
}

// NewService creates a new recipe service instance.
func NewService(logger *slog.Logger, recipes recipeRepo) *Service {
	return &Service{
		log:     logger.With("service", "recipe"),
		recipes: recipes,
	}
}

// CreateInput holds parameters for creating a recipe.
type CreateInput struct {
	Title        string
	Description  *string
	Ingredients  *string
	Instructions *string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the optional recipe fields to change.
// Nil fields are left untouched.
type UpdateInput struct {
	Title        *string
	Description  *string
	Ingredients  *string
	Instructions *string
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title != nil {
		if *i.Title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
		} else if len(*i.Title) > 200 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create stores a new recipe.
func (s *Service) Create(ctx context.Context, foyerID, userID uuid.UUID, input CreateInput) (*domain.Recipe, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.recipes.Create(ctx, &domain.Recipe{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		FoyerID:      foyerID,
		CreatorID:    &userID,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe.Create: %w", err)
	}

	s.log.InfoContext(ctx, "recipe created", slog.String("recipe_id", created.ID.String()))

	return created, nil
}

// List returns the foyer's recipes, most-voted first.
func (s *Service) List(ctx context.Context, foyerID uuid.UUID) ([]domain.Recipe, error) {
	recipes, err := s.recipes.ListByFoyer(ctx, foyerID)
	if err != nil {
		return nil, fmt.Errorf("recipe.List: %w", err)
	}
	return recipes, nil
}

// Get returns a single recipe.
func (s *Service) Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error) {
	rec, err := s.recipes.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("recipe.Get: %w", err)
	}
	return rec, nil
}

// Update merges the provided fields into the stored recipe.
func (s *Service) Update(ctx context.Context, foyerID, id uuid.UUID, input UpdateInput) (*domain.Recipe, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.recipes.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("recipe.Update: %w", err)
	}

	if input.Title != nil {
		rec.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		rec.Description = input.Description
	}
	if input.Ingredients != nil {
		rec.Ingredients = input.Ingredients
	}
	if input.Instructions != nil {
		rec.Instructions = input.Instructions
	}

	updated, err := s.recipes.Update(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("recipe.Update: %w", err)
	}
	return updated, nil
}

// Vote adds one vote to the recipe and returns the updated row.
func (s *Service) Vote(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error) {
	rec, err := s.recipes.IncrementVotes(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("recipe.Vote: %w", err)
	}
	return rec, nil
}

// Delete removes a recipe.
func (s *Service) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	if err := s.recipes.Delete(ctx, foyerID, id); err != nil {
		return fmt.Errorf("recipe.Delete: %w", err)
	}
	return nil
}
