package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// CreateEventInput holds parameters for creating a calendar event.
type CreateEventInput struct {
	Title       string
	Description *string
	StartAt     time.Time
	EndAt       time.Time
	Recurrence  domain.Recurrence
}

// Validate validates the create-event input.
func (i CreateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if i.StartAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "startDate", Message: "required"})
	}
	if i.EndAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "endDate", Message: "required"})
	}
	if !i.Recurrence.Valid() {
		errs = append(errs, domain.FieldError{Field: "recurrence", Message: "must be one of none, daily, weekly, monthly, yearly"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}

	return domain.ValidateDates(i.StartAt, i.EndAt, i.Recurrence)
}

// UpdateEventInput holds the optional event fields to change.
// Nil fields are left untouched.
type UpdateEventInput struct {
	Title         *string
	Description   *string
	StartAt       *time.Time
	EndAt         *time.Time
	Recurrence    *domain.Recurrence
	CompletedByID *uuid.UUID
}

// Validate validates the update-event input fields that can be checked
// without the stored event. Date-pair validation happens after merge.
func (i UpdateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.Title != nil {
		if *i.Title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
		} else if len(*i.Title) > 200 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
		}
	}
	if i.Recurrence != nil && !i.Recurrence.Valid() {
		errs = append(errs, domain.FieldError{Field: "recurrence", Message: "must be one of none, daily, weekly, monthly, yearly"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
