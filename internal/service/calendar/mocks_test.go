package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

var (
	_ eventRepo = &eventRepoMock{}
	_ foyerRepo = &foyerRepoMock{}
	_ txManager = &txManagerMock{}
	_ Notifier  = &notifierMock{}
)

type eventRepoMock struct {
	CreateFunc      func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	GetByIDFunc     func(ctx context.Context, foyerID, id uuid.UUID) (*domain.CalendarEvent, error)
	ListByFoyerFunc func(ctx context.Context, foyerID uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error)
	UpdateFunc      func(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	DeleteFunc      func(ctx context.Context, foyerID, id uuid.UUID) error
}

func (m *eventRepoMock) Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if m.CreateFunc == nil {
		return e, nil
	}
	return m.CreateFunc(ctx, e)
}

func (m *eventRepoMock) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.CalendarEvent, error) {
	return m.GetByIDFunc(ctx, foyerID, id)
}

func (m *eventRepoMock) ListByFoyer(ctx context.Context, foyerID uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
	return m.ListByFoyerFunc(ctx, foyerID, from, to)
}

func (m *eventRepoMock) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	return m.UpdateFunc(ctx, e)
}

func (m *eventRepoMock) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, foyerID, id)
}

type foyerRepoMock struct {
	MemberPushTokensFunc func(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

func (m *foyerRepoMock) MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error) {
	if m.MemberPushTokensFunc == nil {
		return nil, nil
	}
	return m.MemberPushTokensFunc(ctx, foyerID, excludeUserID)
}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifierMock struct {
	SendFunc func(ctx context.Context, tokens []string, title, body string, data map[string]any) error
}

func (m *notifierMock) Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error {
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, tokens, title, body, data)
}
