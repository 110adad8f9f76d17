package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence is the repetition kind of a calendar event template.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is one of the five known recurrence kinds.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// IsRecurring reports whether r describes a repeating series.
func (r Recurrence) IsRecurring() bool {
	return r.Valid() && r != RecurrenceNone
}

func (r Recurrence) String() string { return string(r) }

// CalendarEvent is either a stored template (one row per recurrence series)
// or a computed occurrence. Occurrences produced by expansion are never
// persisted; they share the template's ID with shifted start/end times.
type CalendarEvent struct {
	ID            uuid.UUID
	Title         string
	Description   *string
	StartAt       time.Time
	EndAt         time.Time
	Recurrence    Recurrence
	FoyerID       uuid.UUID
	CreatorID     *uuid.UUID
	CompletedByID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Duration returns the template's occurrence length.
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndAt.Sub(e.StartAt)
}

// ValidateDates enforces the event date invariant: non-recurring events need
// start strictly before end; recurring templates tolerate start == end.
func ValidateDates(start, end time.Time, recurrence Recurrence) error {
	if recurrence == RecurrenceNone {
		if !start.Before(end) {
			return NewValidationError("endDate", "must be after startDate for non-recurring events")
		}
		return nil
	}
	if start.After(end) {
		return NewValidationError("endDate", "must not precede startDate for recurring events")
	}
	return nil
}
