// Package shopping implements the foyer's shared shopping list.
package shopping

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// shoppingRepo defines the repository interface needed by the service.
type shoppingRepo interface {
	Create(ctx context.Context, it *domain.ShoppingItem) (*domain.ShoppingItem, error)
	GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.ShoppingItem, error)
	ListByFoyer(ctx context.Context, foyerID uuid.UUID, purchased *bool) ([]domain.ShoppingItem, error)
	Update(ctx context.Context, it *domain.ShoppingItem) (*domain.ShoppingItem, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// foyerRepo defines the foyer repository interface needed by the service.
type foyerRepo interface {
	MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

// notifier is the push-notification capability needed by the service.
type notifier interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error
}

// Service implements shopping-list operations.
type Service struct {
	log      *slog.Logger
	items    shoppingRepo
	foyers   foyerRepo
	notifier notifier
}

// NewService creates a new shopping service instance.
func NewService(logger *slog.Logger, items shoppingRepo, foyers foyerRepo, n notifier) *Service {
	return &Service{
		log:      logger.With("service", "shopping"),
		items:    items,
		foyers:   foyers,
		notifier: n,
	}
}

// CreateInput holds parameters for adding a shopping item.
type CreateInput struct {
	Name         string
	Quantity     *string
	AssignedToID *uuid.UUID
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	errs = append(errs, validateQuantity(i.Quantity)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the optional item fields to change.
// Nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	Quantity     *string
	Purchased    *bool
	AssignedToID *uuid.UUID
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		if *i.Name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
		} else if len(*i.Name) > 200 {
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}
	errs = append(errs, validateQuantity(i.Quantity)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateQuantity enforces the quantity rule: when present, the value
// must be a positive number in string form.
func validateQuantity(q *string) []domain.FieldError {
	if q == nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(*q), 64)
	if err != nil || n <= 0 {
		return []domain.FieldError{{Field: "quantity", Message: "must be a positive number"}}
	}
	return nil
}

// Create adds an item to the foyer's shopping list and notifies the
// other members.
func (s *Service) Create(ctx context.Context, foyerID, userID uuid.UUID, input CreateInput) (*domain.ShoppingItem, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.items.Create(ctx, &domain.ShoppingItem{
		ID:           uuid.New(),
		Name:         input.Name,
		Quantity:     input.Quantity,
		FoyerID:      foyerID,
		AssignedToID: input.AssignedToID,
		AddedByID:    &userID,
	})
	if err != nil {
		return nil, fmt.Errorf("shopping.Create: %w", err)
	}

	s.notifyMembers(ctx, foyerID, userID, "Shopping list", created.Name)

	return created, nil
}

// List returns the foyer's shopping list, newest first. A non-nil
// purchased narrows the result to that purchase state.
func (s *Service) List(ctx context.Context, foyerID uuid.UUID, purchased *bool) ([]domain.ShoppingItem, error) {
	items, err := s.items.ListByFoyer(ctx, foyerID, purchased)
	if err != nil {
		return nil, fmt.Errorf("shopping.List: %w", err)
	}
	return items, nil
}

// Get returns a single shopping item.
func (s *Service) Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.ShoppingItem, error) {
	it, err := s.items.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("shopping.Get: %w", err)
	}
	return it, nil
}

// Update merges the provided fields into the stored item.
func (s *Service) Update(ctx context.Context, foyerID, id uuid.UUID, input UpdateInput) (*domain.ShoppingItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("shopping.Update: %w", err)
	}

	if input.Name != nil {
		it.Name = strings.TrimSpace(*input.Name)
	}
	if input.Quantity != nil {
		it.Quantity = input.Quantity
	}
	if input.Purchased != nil {
		it.Purchased = *input.Purchased
	}
	if input.AssignedToID != nil {
		it.AssignedToID = input.AssignedToID
	}

	updated, err := s.items.Update(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("shopping.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a shopping item.
func (s *Service) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	if err := s.items.Delete(ctx, foyerID, id); err != nil {
		return fmt.Errorf("shopping.Delete: %w", err)
	}
	return nil
}

func (s *Service) notifyMembers(ctx context.Context, foyerID, actorID uuid.UUID, title, body string) {
	tokens, err := s.foyers.MemberPushTokens(ctx, foyerID, actorID)
	if err != nil {
		s.log.WarnContext(ctx, "load member push tokens failed",
			slog.String("foyer_id", foyerID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if len(tokens) == 0 {
		return
	}
	if err := s.notifier.Send(ctx, tokens, title, body, map[string]any{"type": "shopping"}); err != nil {
		s.log.WarnContext(ctx, "push notification failed",
			slog.String("foyer_id", foyerID.String()),
			slog.String("error", err.Error()),
		)
	}
}
