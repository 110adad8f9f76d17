package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// Planning modes.
const (
	PlanningWeekly        = "weekly"
	PlanningMonthly       = "monthly"
	PlanningMonthlyOneOff = "monthlyOneOff"
)

// DayTimes is the start/end time-of-day pair for one schedule entry,
// both in "HH:MM".
type DayTimes struct {
	Start string
	End   string
}

// PlanningInput describes a bulk schedule: one event per selected day.
// For weekly mode the schedule keys are weekday names (monday..sunday,
// case-insensitive); for the monthly modes they are day-of-month numbers
// and Month/Year are mandatory.
type PlanningInput struct {
	Title    string
	Mode     string
	Schedule map[string]DayTimes
	Month    int
	Year     int
}

// Validate validates the planning input shape. Per-day time validation
// happens while building the schedule.
func (i PlanningInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	switch i.Mode {
	case PlanningWeekly:
	case PlanningMonthly, PlanningMonthlyOneOff:
		if i.Month < 1 || i.Month > 12 {
			errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
		}
		if i.Year < 1970 || i.Year > 9999 {
			errs = append(errs, domain.FieldError{Field: "year", Message: "out of range"})
		}
	default:
		errs = append(errs, domain.FieldError{Field: "recurrence", Message: "must be one of weekly, monthly, monthlyOneOff"})
	}

	if len(i.Schedule) == 0 {
		errs = append(errs, domain.FieldError{Field: "schedule", Message: "at least one day required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreatePlanning materializes one stored event per schedule entry, all in
// a single transaction: a validation failure on any day leaves nothing
// persisted. Returns the created events in schedule order (weekdays
// monday-first, month days ascending).
func (s *Service) CreatePlanning(ctx context.Context, foyerID, userID uuid.UUID, input PlanningInput) ([]domain.CalendarEvent, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	planned, err := buildSchedule(input, time.Now())
	if err != nil {
		return nil, err
	}

	created := make([]domain.CalendarEvent, 0, len(planned))
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, p := range planned {
			e, err := s.events.Create(txCtx, &domain.CalendarEvent{
				ID:          uuid.New(),
				Title:       input.Title,
				Description: &p.description,
				StartAt:     p.start,
				EndAt:       p.end,
				Recurrence:  p.recurrence,
				FoyerID:     foyerID,
				CreatorID:   &userID,
			})
			if err != nil {
				return fmt.Errorf("create event for %s: %w", p.day, err)
			}
			created = append(created, *e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("calendar.CreatePlanning: %w", err)
	}

	s.log.InfoContext(ctx, "planning created",
		slog.String("mode", input.Mode),
		slog.Int("events", len(created)),
	)

	s.notifyMembers(ctx, foyerID, userID, "New planning", input.Title, map[string]any{
		"type": "calendar",
	})

	return created, nil
}

// plannedEvent is one resolved schedule entry.
type plannedEvent struct {
	day         string
	description string
	start       time.Time
	end         time.Time
	recurrence  domain.Recurrence
}

// weekdayOrder fixes the processing order of weekly schedules.
var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// buildSchedule resolves the schedule map into concrete timestamps.
// Deterministic: weekly entries come out monday-first, monthly entries
// in ascending day order.
func buildSchedule(input PlanningInput, now time.Time) ([]plannedEvent, error) {
	if input.Mode == PlanningWeekly {
		return buildWeekly(input, now)
	}
	return buildMonthly(input)
}

func buildWeekly(input PlanningInput, now time.Time) ([]plannedEvent, error) {
	// Normalize keys first so Monday/MONDAY/monday collapse together.
	schedule := make(map[string]DayTimes, len(input.Schedule))
	for day, times := range input.Schedule {
		schedule[strings.ToLower(strings.TrimSpace(day))] = times
	}
	for day := range schedule {
		if _, ok := weekdayByName[day]; !ok {
			return nil, domain.NewValidationError("schedule", fmt.Sprintf("unknown weekday %q", day))
		}
	}

	planned := make([]plannedEvent, 0, len(schedule))
	for _, day := range weekdayOrder {
		times, ok := schedule[day]
		if !ok {
			continue
		}

		date := nextWeekday(now, weekdayByName[day])
		start, end, err := resolveTimes(date, day, times)
		if err != nil {
			return nil, err
		}

		planned = append(planned, plannedEvent{
			day:         day,
			description: fmt.Sprintf("Weekly planning for %s", day),
			start:       start,
			end:         end,
			recurrence:  domain.RecurrenceWeekly,
		})
	}
	return planned, nil
}

func buildMonthly(input PlanningInput) ([]plannedEvent, error) {
	recurrence := domain.RecurrenceMonthly
	if input.Mode == PlanningMonthlyOneOff {
		// One-shot entries: stored as plain events, never expanded.
		recurrence = domain.RecurrenceNone
	}

	daysInMonth := time.Date(input.Year, time.Month(input.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]int, 0, len(input.Schedule))
	byDay := make(map[int]DayTimes, len(input.Schedule))
	for key, times := range input.Schedule {
		day, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || day < 1 || day > daysInMonth {
			return nil, domain.NewValidationError("schedule", fmt.Sprintf("invalid day of month %q", key))
		}
		days = append(days, day)
		byDay[day] = times
	}
	sort.Ints(days)

	planned := make([]plannedEvent, 0, len(days))
	for _, day := range days {
		label := strconv.Itoa(day)
		date := time.Date(input.Year, time.Month(input.Month), day, 0, 0, 0, 0, time.UTC)

		start, end, err := resolveTimes(date, label, byDay[day])
		if err != nil {
			return nil, err
		}

		planned = append(planned, plannedEvent{
			day:         label,
			description: fmt.Sprintf("Monthly planning for day %d", day),
			start:       start,
			end:         end,
			recurrence:  recurrence,
		})
	}
	return planned, nil
}

// nextWeekday returns the next occurrence of w strictly after now's date.
func nextWeekday(now time.Time, w time.Weekday) time.Time {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	delta := (int(w) - int(date.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return date.AddDate(0, 0, delta)
}

// resolveTimes anchors a day's "HH:MM" pair onto date and checks that the
// start comes strictly before the end, naming the offending day otherwise.
func resolveTimes(date time.Time, day string, times DayTimes) (time.Time, time.Time, error) {
	startH, startM, err := parseClock(times.Start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("schedule", fmt.Sprintf("day %s: invalid start time %q", day, times.Start))
	}
	endH, endM, err := parseClock(times.End)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("schedule", fmt.Sprintf("day %s: invalid end time %q", day, times.End))
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startH, startM, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), endH, endM, 0, 0, date.Location())

	if !start.Before(end) {
		return time.Time{}, time.Time{}, domain.NewValidationError("schedule", fmt.Sprintf("day %s: start time must be before end time", day))
	}
	return start, end, nil
}

// parseClock parses "HH:MM" into hours and minutes.
func parseClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("malformed hours %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("malformed minutes %q", s)
	}
	return h, m, nil
}
