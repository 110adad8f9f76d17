package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// CreateInput holds parameters for creating a task.
type CreateInput struct {
	Title        string
	Description  *string
	AssignedToID *uuid.UUID
	Points       int
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if i.Points < 0 {
		errs = append(errs, domain.FieldError{Field: "points", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the optional task fields to change.
// Nil fields are left untouched.
type UpdateInput struct {
	Title        *string
	Description  *string
	AssignedToID *uuid.UUID
	Points       *int
	Completed    *bool
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
	if i.Points != nil && *i.Points < 0 {
		errs = append(errs, domain.FieldError{Field: "points", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create stores a new task and notifies the other foyer members.
func (s *Service) Create(ctx context.Context, foyerID, userID uuid.UUID, input CreateInput) (*domain.Task, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.tasks.Create(ctx, &domain.Task{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		FoyerID:      foyerID,
		AssignedToID: input.AssignedToID,
		Points:       input.Points,
	})
	if err != nil {
		return nil, fmt.Errorf("task.Create: %w", err)
	}

	s.notifyMembers(ctx, foyerID, userID, "New task", created.Title)

	return created, nil
}

// List returns the foyer's tasks, newest first. A non-nil completed
// narrows the result to that completion state.
func (s *Service) List(ctx context.Context, foyerID uuid.UUID, completed *bool) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByFoyer(ctx, foyerID, completed)
	if err != nil {
		return nil, fmt.Errorf("task.List: %w", err)
	}
	return tasks, nil
}

// Get returns a single task.
func (s *Service) Get(ctx context.Context, foyerID, id uuid.UUID) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("task.Get: %w", err)
	}
	return t, nil
}

// Update merges the provided fields into the stored task. Completing a
// task (false to true transition) credits the assignee's points balance;
// the task write and the points credit commit atomically. Un-completing
// a task does not claw points back.
func (s *Service) Update(ctx context.Context, foyerID, id uuid.UUID, input UpdateInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	t, err := s.tasks.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("task.Update: %w", err)
	}

	wasCompleted := t.Completed

	if input.Title != nil {
		t.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	if input.AssignedToID != nil {
		t.AssignedToID = input.AssignedToID
	}
	if input.Points != nil {
		t.Points = *input.Points
	}
	if input.Completed != nil {
		t.Completed = *input.Completed
	}

	justCompleted := !wasCompleted && t.Completed && t.AssignedToID != nil && t.Points > 0

	var updated *domain.Task
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, err = s.tasks.Update(txCtx, t)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if justCompleted {
			if err := s.users.AddPoints(txCtx, *t.AssignedToID, t.Points); err != nil {
				return fmt.Errorf("credit points: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("task.Update: %w", err)
	}

	if justCompleted {
		s.log.InfoContext(ctx, "task completed",
			slog.String("task_id", t.ID.String()),
			slog.String("user_id", t.AssignedToID.String()),
			slog.Int("points", t.Points),
		)
	}

	return updated, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, foyerID, id); err != nil {
		return fmt.Errorf("task.Delete: %w", err)
	}
	return nil
}
