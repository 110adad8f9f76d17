package task

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type taskRepoMock struct {
	CreateFunc      func(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByIDFunc     func(ctx context.Context, foyerID, id uuid.UUID) (*domain.Task, error)
	ListByFoyerFunc func(ctx context.Context, foyerID uuid.UUID, completed *bool) ([]domain.Task, error)
	UpdateFunc      func(ctx context.Context, t *domain.Task) (*domain.Task, error)
	DeleteFunc      func(ctx context.Context, foyerID, id uuid.UUID) error
}

func (m *taskRepoMock) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	return m.CreateFunc(ctx, t)
}

func (m *taskRepoMock) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.Task, error) {
	return m.GetByIDFunc(ctx, foyerID, id)
}

func (m *taskRepoMock) ListByFoyer(ctx context.Context, foyerID uuid.UUID, completed *bool) ([]domain.Task, error) {
	return m.ListByFoyerFunc(ctx, foyerID, completed)
}

func (m *taskRepoMock) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	return m.UpdateFunc(ctx, t)
}

func (m *taskRepoMock) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, foyerID, id)
}

type userRepoMock struct {
	AddPointsFunc func(ctx context.Context, id uuid.UUID, delta int) error
}

func (m *userRepoMock) AddPoints(ctx context.Context, id uuid.UUID, delta int) error {
	if m.AddPointsFunc == nil {
		return nil
	}
	return m.AddPointsFunc(ctx, id, delta)
}

type foyerRepoMock struct{}

func (m *foyerRepoMock) MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error) {
	return nil, nil
}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifierMock struct{}

func (m *notifierMock) Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error {
	return nil
}

func newTestService(tasks *taskRepoMock, users *userRepoMock) *Service {
	return NewService(testLogger(), tasks, users, &foyerRepoMock{}, &txManagerMock{}, &notifierMock{})
}

func TestCreate(t *testing.T) {
	t.Parallel()

	foyerID := uuid.New()
	userID := uuid.New()

	var stored *domain.Task
	tasks := &taskRepoMock{
		CreateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			stored = task
			return task, nil
		},
	}

	svc := newTestService(tasks, &userRepoMock{})

	created, err := svc.Create(context.Background(), foyerID, userID, CreateInput{
		Title:  " Vacuum ",
		Points: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vacuum", created.Title)
	assert.Equal(t, foyerID, stored.FoyerID)
	assert.False(t, stored.Completed)
}

func TestCreate_NegativePoints(t *testing.T) {
	t.Parallel()

	svc := newTestService(&taskRepoMock{}, &userRepoMock{})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateInput{
		Title:  "Vacuum",
		Points: -1,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_CompletionCreditsPoints(t *testing.T) {
	t.Parallel()

	foyerID := uuid.New()
	taskID := uuid.New()
	assignee := uuid.New()

	stored := domain.Task{
		ID:           taskID,
		FoyerID:      foyerID,
		Title:        "Vacuum",
		AssignedToID: &assignee,
		Points:       5,
	}

	tasks := &taskRepoMock{
		GetByIDFunc: func(ctx context.Context, fID, id uuid.UUID) (*domain.Task, error) {
			cp := stored
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			return task, nil
		},
	}

	credits := 0
	var creditedUser uuid.UUID
	var creditedPoints int
	users := &userRepoMock{
		AddPointsFunc: func(ctx context.Context, id uuid.UUID, delta int) error {
			credits++
			creditedUser = id
			creditedPoints = delta
			return nil
		},
	}

	svc := newTestService(tasks, users)

	completed := true
	updated, err := svc.Update(context.Background(), foyerID, taskID, UpdateInput{Completed: &completed})
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, 1, credits)
	assert.Equal(t, assignee, creditedUser)
	assert.Equal(t, 5, creditedPoints)
}

func TestUpdate_AlreadyCompletedNoDoubleCredit(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	stored := domain.Task{
		ID:           uuid.New(),
		FoyerID:      uuid.New(),
		Title:        "Vacuum",
		AssignedToID: &assignee,
		Points:       5,
		Completed:    true,
	}

	tasks := &taskRepoMock{
		GetByIDFunc: func(ctx context.Context, fID, id uuid.UUID) (*domain.Task, error) {
			cp := stored
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			return task, nil
		},
	}

	credits := 0
	users := &userRepoMock{
		AddPointsFunc: func(ctx context.Context, id uuid.UUID, delta int) error {
			credits++
			return nil
		},
	}

	svc := newTestService(tasks, users)

	completed := true
	_, err := svc.Update(context.Background(), stored.FoyerID, stored.ID, UpdateInput{Completed: &completed})
	require.NoError(t, err)
	assert.Zero(t, credits, "re-completing must not credit again")
}

func TestUpdate_UncompletingKeepsPoints(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	stored := domain.Task{
		ID:           uuid.New(),
		FoyerID:      uuid.New(),
		Title:        "Vacuum",
		AssignedToID: &assignee,
		Points:       5,
		Completed:    true,
	}

	tasks := &taskRepoMock{
		GetByIDFunc: func(ctx context.Context, fID, id uuid.UUID) (*domain.Task, error) {
			cp := stored
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			return task, nil
		},
	}

	credits := 0
	users := &userRepoMock{
		AddPointsFunc: func(ctx context.Context, id uuid.UUID, delta int) error {
			credits++
			return nil
		},
	}

	svc := newTestService(tasks, users)

	completed := false
	updated, err := svc.Update(context.Background(), stored.FoyerID, stored.ID, UpdateInput{Completed: &completed})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Zero(t, credits, "un-completing never claws points back")
}

func TestUpdate_UnassignedCompletionNoCredit(t *testing.T) {
	t.Parallel()

	stored := domain.Task{
		ID:      uuid.New(),
		FoyerID: uuid.New(),
		Title:   "Vacuum",
		Points:  5,
	}

	tasks := &taskRepoMock{
		GetByIDFunc: func(ctx context.Context, fID, id uuid.UUID) (*domain.Task, error) {
			cp := stored
			return &cp, nil
		},
		UpdateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			return task, nil
		},
	}

	credits := 0
	users := &userRepoMock{
		AddPointsFunc: func(ctx context.Context, id uuid.UUID, delta int) error {
			credits++
			return nil
		},
	}

	svc := newTestService(tasks, users)

	completed := true
	_, err := svc.Update(context.Background(), stored.FoyerID, stored.ID, UpdateInput{Completed: &completed})
	require.NoError(t, err)
	assert.Zero(t, credits, "no assignee, nobody to credit")
}
