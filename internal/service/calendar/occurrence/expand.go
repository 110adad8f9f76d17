// Package occurrence computes the concrete occurrences of recurring
// calendar-event templates. Expansion is pure: templates are never
// mutated and occurrences are never persisted.
package occurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// MaxOccurrences caps the number of occurrences produced from one
// template. It is a resource-protection bound, not a business rule:
// with no upper window bound, expansion would otherwise never stop.
const MaxOccurrences = 500

// ErrUnsupportedRecurrence is returned for a recurrence kind the
// expander does not know how to advance.
var ErrUnsupportedRecurrence = errors.New("unsupported recurrence kind")

// Expand produces the occurrences of template that start inside the
// closed window [from, to]. A nil bound leaves that side unbounded.
// Occurrences are copies of the template with shifted start/end and are
// emitted in strictly ascending start order.
//
// A template with recurrence = none is returned as-is when its start
// falls inside the window, so callers can treat every stored row
// uniformly.
func Expand(template domain.CalendarEvent, from, to *time.Time) ([]domain.CalendarEvent, error) {
	if template.Recurrence == domain.RecurrenceNone {
		if inWindow(template.StartAt, from, to) {
			return []domain.CalendarEvent{template}, nil
		}
		return []domain.CalendarEvent{}, nil
	}

	if !template.Recurrence.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRecurrence, template.Recurrence)
	}

	duration := template.Duration()
	occurrences := []domain.CalendarEvent{}
	cursor := template.StartAt

	for len(occurrences) < MaxOccurrences {
		if to != nil && cursor.After(*to) {
			break
		}
		if inWindow(cursor, from, to) {
			occ := template
			occ.StartAt = cursor
			occ.EndAt = cursor.Add(duration)
			occurrences = append(occurrences, occ)
		}
		cursor = advance(cursor, template.Recurrence)
	}

	return occurrences, nil
}

// advance moves the cursor forward by one recurrence unit. Monthly and
// yearly steps go through AddDate, so short months normalize forward
// (Jan 31 + 1 month = Mar 3) rather than clamping.
func advance(cursor time.Time, r domain.Recurrence) time.Time {
	switch r {
	case domain.RecurrenceDaily:
		return cursor.AddDate(0, 0, 1)
	case domain.RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7)
	case domain.RecurrenceMonthly:
		return cursor.AddDate(0, 1, 0)
	case domain.RecurrenceYearly:
		return cursor.AddDate(1, 0, 0)
	}
	// Unreachable: Expand validates the kind first.
	return cursor
}

func inWindow(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
