// Package calendar implements calendar-event CRUD, recurring-event
// expansion and bulk planning generation.
package calendar

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// eventRepo defines the event repository interface needed by the service.
type eventRepo interface {
	Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.CalendarEvent, error)
	ListByFoyer(ctx context.Context, foyerID uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// foyerRepo defines the foyer repository interface needed by the service.
type foyerRepo interface {
	MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier is the push-notification capability used by services.
// Delivery is best-effort: callers log failures and move on.
type Notifier interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error
}

// Service implements calendar operations.
type Service struct {
	log      *slog.Logger
	events   eventRepo
	foyers   foyerRepo
	tx       txManager
	notifier Notifier
}

// NewService creates a new calendar service instance.
func NewService(
	logger *slog.Logger,
	events eventRepo,
	foyers foyerRepo,
	tx txManager,
	notifier Notifier,
) *Service {
	return &Service{
		log:      logger.With("service", "calendar"),
		events:   events,
		foyers:   foyers,
		tx:       tx,
		notifier: notifier,
	}
}

// notifyMembers pushes a notification to the other members of the foyer.
// Failures never surface to the caller.
func (s *Service) notifyMembers(ctx context.Context, foyerID, actorID uuid.UUID, title, body string, data map[string]any) {
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
	if err := s.notifier.Send(ctx, tokens, title, body, data); err != nil {
		s.log.WarnContext(ctx, "push notification failed",
			slog.String("foyer_id", foyerID.String()),
			slog.String("error", err.Error()),
		)
	}
}
