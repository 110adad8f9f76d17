package calendar

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(events *eventRepoMock) *Service {
	return NewService(testLogger(), events, &foyerRepoMock{}, &txManagerMock{}, &notifierMock{})
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	foyerID := uuid.New()
	userID := uuid.New()

	var stored *domain.CalendarEvent
	events := &eventRepoMock{
		CreateFunc: func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
			stored = e
			return e, nil
		},
	}

	svc := newTestService(events)

	created, err := svc.CreateEvent(context.Background(), foyerID, userID, CreateEventInput{
		Title:      "  Dinner  ",
		StartAt:    time.Date(2025, time.July, 1, 19, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2025, time.July, 1, 20, 0, 0, 0, time.UTC),
		Recurrence: domain.RecurrenceNone,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dinner", created.Title)
	assert.Equal(t, foyerID, stored.FoyerID)
	require.NotNil(t, stored.CreatorID)
	assert.Equal(t, userID, *stored.CreatorID)
}

func TestCreateEvent_DateValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&eventRepoMock{})

	start := time.Date(2025, time.July, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		recurrence domain.Recurrence
		wantErr    bool
	}{
		{"one-shot start before end", start, start.Add(time.Hour), domain.RecurrenceNone, false},
		{"one-shot start equals end", start, start, domain.RecurrenceNone, true},
		{"one-shot start after end", start, start.Add(-time.Hour), domain.RecurrenceNone, true},
		{"recurring start equals end", start, start, domain.RecurrenceWeekly, false},
		{"recurring start after end", start, start.Add(-time.Minute), domain.RecurrenceWeekly, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.CreateEvent(context.Background(), uuid.New(), uuid.New(), CreateEventInput{
				Title:      "T",
				StartAt:    tt.start,
				EndAt:      tt.end,
				Recurrence: tt.recurrence,
			})
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateEvent_UnknownRecurrence(t *testing.T) {
	t.Parallel()

	svc := newTestService(&eventRepoMock{})

	_, err := svc.CreateEvent(context.Background(), uuid.New(), uuid.New(), CreateEventInput{
		Title:      "T",
		StartAt:    time.Now(),
		EndAt:      time.Now().Add(time.Hour),
		Recurrence: domain.Recurrence("biweekly"),
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestListEvents_ExpandsAndSorts(t *testing.T) {
	t.Parallel()

	foyerID := uuid.New()

	weekly := domain.CalendarEvent{
		ID:         uuid.New(),
		FoyerID:    foyerID,
		Title:      "Trash",
		StartAt:    time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC), // Monday
		EndAt:      time.Date(2025, time.January, 6, 10, 30, 0, 0, time.UTC),
		Recurrence: domain.RecurrenceWeekly,
	}
	oneShot := domain.CalendarEvent{
		ID:         uuid.New(),
		FoyerID:    foyerID,
		Title:      "Vet",
		StartAt:    time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2025, time.January, 10, 9, 30, 0, 0, time.UTC),
		Recurrence: domain.RecurrenceNone,
	}

	events := &eventRepoMock{
		ListByFoyerFunc: func(ctx context.Context, id uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
			return []domain.CalendarEvent{weekly, oneShot}, nil
		},
	}

	svc := newTestService(events)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC)

	got, err := svc.ListEvents(context.Background(), foyerID, &from, &to)
	require.NoError(t, err)

	// Four Mondays plus the one-shot.
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartAt.Before(got[i-1].StartAt), "result must be sorted by start")
	}
	assert.Equal(t, "Vet", got[1].Title, "one-shot lands between Jan 6 and Jan 13")
}

func TestListEvents_UnknownStoredRecurrence(t *testing.T) {
	t.Parallel()

	events := &eventRepoMock{
		ListByFoyerFunc: func(ctx context.Context, id uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
			return []domain.CalendarEvent{{
				ID:         uuid.New(),
				Title:      "Bad",
				StartAt:    time.Now(),
				EndAt:      time.Now().Add(time.Hour),
				Recurrence: domain.Recurrence("lunar"),
			}}, nil
		},
	}

	svc := newTestService(events)

	_, err := svc.ListEvents(context.Background(), uuid.New(), nil, nil)
	require.Error(t, err)
}

func TestUpdateEvent_MergeAndRevalidate(t *testing.T) {
	t.Parallel()

	foyerID := uuid.New()
	eventID := uuid.New()

	stored := domain.CalendarEvent{
		ID:         eventID,
		FoyerID:    foyerID,
		Title:      "Dinner",
		StartAt:    time.Date(2025, time.July, 1, 19, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2025, time.July, 1, 20, 0, 0, 0, time.UTC),
		Recurrence: domain.RecurrenceNone,
	}

	events := &eventRepoMock{
		GetByIDFunc: func(ctx context.Context, fID, id uuid.UUID) (*domain.CalendarEvent, error) {
			e := stored
			return &e, nil
		},
		UpdateFunc: func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
			return e, nil
		},
	}

	svc := newTestService(events)

	newTitle := "Late dinner"
	updated, err := svc.UpdateEvent(context.Background(), foyerID, eventID, UpdateEventInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Late dinner", updated.Title)
	assert.Equal(t, stored.StartAt, updated.StartAt, "untouched fields survive")

	// Moving the start past the stored end must fail after merge.
	badStart := stored.EndAt.Add(time.Hour)
	_, err = svc.UpdateEvent(context.Background(), foyerID, eventID, UpdateEventInput{StartAt: &badStart})
	require.ErrorIs(t, err, domain.ErrValidation)
}
