// Package task implements household chores with completion points.
package task

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// taskRepo defines the task repository interface needed by the service.
type taskRepo interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.Task, error)
	ListByFoyer(ctx context.Context, foyerID uuid.UUID, completed *bool) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, foyerID, id uuid.UUID) error
}

// userRepo defines the user repository interface needed by the service.
type userRepo interface {
	AddPoints(ctx context.Context, id uuid.UUID, delta int) error
}

// foyerRepo defines the foyer repository interface needed by the service.
type foyerRepo interface {
	MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// notifier is the push-notification capability needed by the service.
type notifier interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error
}

// Service implements task operations.
type Service struct {
	log      *slog.Logger
	tasks    taskRepo
	users    userRepo
	foyers   foyerRepo
	tx       txManager
	notifier notifier
}

// NewService creates a new task service instance.
func NewService(
	logger *slog.Logger,
	tasks taskRepo,
	users userRepo,
	foyers foyerRepo,
	tx txManager,
	n notifier,
) *Service {
	return &Service{
		log:      logger.With("service", "task"),
		tasks:    tasks,
		users:    users,
		foyers:   foyers,
		tx:       tx,
		notifier: n,
	}
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
	if err := s.notifier.Send(ctx, tokens, title, body, map[string]any{"type": "task"}); err != nil {
		s.log.WarnContext(ctx, "push notification failed",
			slog.String("foyer_id", foyerID.String()),
			slog.String("error", err.Error()),
		)
	}
}
