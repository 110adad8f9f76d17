// Package travel implements foyer-shared travel ideas with voting.
package travel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// travelRepo defines the repository interface needed by the service.
type travelRepo interface {
	Create(ctx context.Context, t *domain.TravelIdea) (*domain.TravelIdea, error)
	GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error)
	ListByFoyer(ctx context.Context, foyerID uuid.UUID) ([]domain.TravelIdea, error)
	Update(ctx context.Context, t *domain.TravelIdea) (*domain.TravelIdea, error)
	IncrementVotes(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// Service implements travel-idea operations.
type Service struct {
	log   *slog.Logger
	ideas travelRepo
}

// NewService creates a new travel service instance.
func NewService(logger *slog.Logger, ideas travelRepo) *Service {
	return &Service{
		log:   logger.With("service", "travel"),
		ideas: ideas,
	}
}

// CreateInput holds parameters for creating a travel idea.
type CreateInput struct {
	Title       string
	Description *string
	Location    *string
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

// UpdateInput holds the optional idea fields to change.
// Nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Location    *string
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

// Create stores a new travel idea.
func (s *Service) Create(ctx context.Context, foyerID, userID uuid.UUID, input CreateInput) (*domain.TravelIdea, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.ideas.Create(ctx, &domain.TravelIdea{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		FoyerID:     foyerID,
		CreatorID:   &userID,
	})
	if err != nil {
		return nil, fmt.Errorf("travel.Create: %w", err)
	}

	s.log.InfoContext(ctx, "travel idea created", slog.String("idea_id", created.ID.String()))

	return created, nil
}

// List returns the foyer's travel ideas, most-voted first.
func (s *Service) List(ctx context.Context, foyerID uuid.UUID) ([]domain.TravelIdea, error) {
	ideas, err := s.ideas.ListByFoyer(ctx, foyerID)
	if err != nil {
		return nil, fmt.Errorf("travel.List: %w", err)
	}
	return ideas, nil
}

// Get returns a single travel idea.
func (s *Service) Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error) {
	t, err := s.ideas.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("travel.Get: %w", err)
	}
	return t, nil
}

// Update merges the provided fields into the stored idea.
func (s *Service) Update(ctx context.Context, foyerID, id uuid.UUID, input UpdateInput) (*domain.TravelIdea, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	t, err := s.ideas.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("travel.Update: %w", err)
	}

	if input.Title != nil {
		t.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	if input.Location != nil {
		t.Location = input.Location
	}

	updated, err := s.ideas.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("travel.Update: %w", err)
	}
	return updated, nil
}

// Vote adds one vote to the idea and returns the updated row.
func (s *Service) Vote(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error) {
	t, err := s.ideas.IncrementVotes(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("travel.Vote: %w", err)
	}
	return t, nil
}

// Delete removes a travel idea.
func (s *Service) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	if err := s.ideas.Delete(ctx, foyerID, id); err != nil {
		return fmt.Errorf("travel.Delete: %w", err)
	}
	return nil
}
