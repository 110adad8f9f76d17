package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/calendar/occurrence"
)

// CreateEvent stores a new event template and notifies the other foyer
// members.
func (s *Service) CreateEvent(ctx context.Context, foyerID, userID uuid.UUID, input CreateEventInput) (*domain.CalendarEvent, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.events.Create(ctx, &domain.CalendarEvent{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Recurrence:  input.Recurrence,
		FoyerID:     foyerID,
		CreatorID:   &userID,
	})
	if err != nil {
		return nil, fmt.Errorf("calendar.CreateEvent: %w", err)
	}

	s.log.InfoContext(ctx, "event created",
		slog.String("event_id", created.ID.String()),
		slog.String("recurrence", created.Recurrence.String()),
	)

	s.notifyMembers(ctx, foyerID, userID, "New event", created.Title, map[string]any{
		"type":    "calendar",
		"eventId": created.ID.String(),
	})

	return created, nil
}

// ListEvents returns the concrete occurrences of the foyer's events inside
// the optional window [from, to]. Stored templates with recurrence = none
// pass through unchanged; recurring templates are expanded. The combined
// result is sorted by start time.
func (s *Service) ListEvents(ctx context.Context, foyerID uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
	templates, err := s.events.ListByFoyer(ctx, foyerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("calendar.ListEvents: %w", err)
	}

	result := []domain.CalendarEvent{}
	for _, tmpl := range templates {
		occurrences, err := occurrence.Expand(tmpl, from, to)
		if err != nil {
			return nil, fmt.Errorf("calendar.ListEvents expand %s: %w", tmpl.ID, err)
		}
		result = append(result, occurrences...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartAt.Before(result[j].StartAt)
	})

	return result, nil
}

// GetEvent returns a single stored event template.
func (s *Service) GetEvent(ctx context.Context, foyerID, id uuid.UUID) (*domain.CalendarEvent, error) {
	e, err := s.events.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("calendar.GetEvent: %w", err)
	}
	return e, nil
}

// UpdateEvent merges the provided fields into the stored template,
// re-validates the date pair and persists the result.
func (s *Service) UpdateEvent(ctx context.Context, foyerID, id uuid.UUID, input UpdateEventInput) (*domain.CalendarEvent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e, err := s.events.GetByID(ctx, foyerID, id)
	if err != nil {
		return nil, fmt.Errorf("calendar.UpdateEvent: %w", err)
	}

	if input.Title != nil {
		e.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		e.Description = input.Description
	}
	if input.StartAt != nil {
		e.StartAt = *input.StartAt
	}
	if input.EndAt != nil {
		e.EndAt = *input.EndAt
	}
	if input.Recurrence != nil {
		e.Recurrence = *input.Recurrence
	}
	if input.CompletedByID != nil {
		e.CompletedByID = input.CompletedByID
	}

	if err := domain.ValidateDates(e.StartAt, e.EndAt, e.Recurrence); err != nil {
		return nil, err
	}

	updated, err := s.events.Update(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("calendar.UpdateEvent: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes an event template. Deleting a recurring template
// removes the whole series, since occurrences are never stored.
func (s *Service) DeleteEvent(ctx context.Context, foyerID, id uuid.UUID) error {
	if err := s.events.Delete(ctx, foyerID, id); err != nil {
		return fmt.Errorf("calendar.DeleteEvent: %w", err)
	}

	s.log.InfoContext(ctx, "event deleted", slog.String("event_id", id.String()))
	return nil
}
