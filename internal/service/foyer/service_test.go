package foyer

import (
	"context"
	"io"
	"log/slog"
	"strings"
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

type foyerRepoMock struct {
	CreateFunc           func(ctx context.Context, f *domain.Foyer) (*domain.Foyer, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Foyer, error)
	GetByCodeFunc        func(ctx context.Context, code string) (*domain.Foyer, error)
	AddMemberFunc        func(ctx context.Context, userID, foyerID uuid.UUID) error
	IsMemberFunc         func(ctx context.Context, userID, foyerID uuid.UUID) (bool, error)
	FirstFoyerIDFunc     func(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]domain.Foyer, error)
	MemberPushTokensFunc func(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

func (m *foyerRepoMock) Create(ctx context.Context, f *domain.Foyer) (*domain.Foyer, error) {
	return m.CreateFunc(ctx, f)
}

func (m *foyerRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Foyer, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *foyerRepoMock) GetByCode(ctx context.Context, code string) (*domain.Foyer, error) {
	return m.GetByCodeFunc(ctx, code)
}

func (m *foyerRepoMock) AddMember(ctx context.Context, userID, foyerID uuid.UUID) error {
	return m.AddMemberFunc(ctx, userID, foyerID)
}

func (m *foyerRepoMock) IsMember(ctx context.Context, userID, foyerID uuid.UUID) (bool, error) {
	return m.IsMemberFunc(ctx, userID, foyerID)
}

func (m *foyerRepoMock) FirstFoyerID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return m.FirstFoyerIDFunc(ctx, userID)
}

func (m *foyerRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Foyer, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *foyerRepoMock) MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error) {
	return m.MemberPushTokensFunc(ctx, foyerID, excludeUserID)
}

type userRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetRuleAcceptedFunc func(ctx context.Context, id uuid.UUID, at time.Time) error
	LeaderboardFunc     func(ctx context.Context, foyerID uuid.UUID) ([]domain.LeaderboardEntry, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) SetRuleAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.SetRuleAcceptedFunc(ctx, id, at)
}

func (m *userRepoMock) Leaderboard(ctx context.Context, foyerID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	return m.LeaderboardFunc(ctx, foyerID)
}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	var createdFoyer *domain.Foyer
	var addedMember uuid.UUID
	foyers := &foyerRepoMock{
		CreateFunc: func(ctx context.Context, f *domain.Foyer) (*domain.Foyer, error) {
			createdFoyer = f
			return f, nil
		},
		AddMemberFunc: func(ctx context.Context, uID, fID uuid.UUID) error {
			addedMember = uID
			return nil
		},
	}
	var ruleAcceptedFor uuid.UUID
	users := &userRepoMock{
		SetRuleAcceptedFunc: func(ctx context.Context, id uuid.UUID, at time.Time) error {
			ruleAcceptedFor = id
			return nil
		},
	}

	svc := NewService(testLogger(), foyers, users, &txManagerMock{})

	f, err := svc.Create(context.Background(), userID, CreateInput{
		Name: "  Chez nous ",
		Rule: "Wash your dishes",
	})
	require.NoError(t, err)

	assert.Equal(t, "Chez nous", f.Name)
	assert.Len(t, createdFoyer.Code, domain.InviteCodeLength)
	assert.Equal(t, strings.ToUpper(createdFoyer.Code), createdFoyer.Code, "codes are uppercase")
	assert.Equal(t, userID, addedMember, "creator becomes the first member")
	assert.Equal(t, userID, ruleAcceptedFor, "creating implies accepting the rule")
}

func TestCreate_CodeCollisionRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	seen := map[string]bool{}
	foyers := &foyerRepoMock{
		CreateFunc: func(ctx context.Context, f *domain.Foyer) (*domain.Foyer, error) {
			attempts++
			seen[f.Code] = true
			if attempts < 3 {
				return nil, domain.ErrAlreadyExists
			}
			return f, nil
		},
		AddMemberFunc: func(ctx context.Context, uID, fID uuid.UUID) error { return nil },
	}
	users := &userRepoMock{
		SetRuleAcceptedFunc: func(ctx context.Context, id uuid.UUID, at time.Time) error { return nil },
	}

	svc := NewService(testLogger(), foyers, users, &txManagerMock{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Home"})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, seen, 3, "every attempt uses a fresh code")
}

func TestJoin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	target := &domain.Foyer{ID: uuid.New(), Name: "Home", Code: "ABCD2345"}

	foyers := &foyerRepoMock{
		GetByCodeFunc: func(ctx context.Context, code string) (*domain.Foyer, error) {
			if code != target.Code {
				return nil, domain.ErrNotFound
			}
			return target, nil
		},
		AddMemberFunc: func(ctx context.Context, uID, fID uuid.UUID) error { return nil },
	}
	users := &userRepoMock{
		SetRuleAcceptedFunc: func(ctx context.Context, id uuid.UUID, at time.Time) error { return nil },
	}

	svc := NewService(testLogger(), foyers, users, &txManagerMock{})

	// Code is normalized: lowercase with padding still matches.
	f, err := svc.Join(context.Background(), userID, JoinInput{Code: " abcd2345 ", AcceptRule: true})
	require.NoError(t, err)
	assert.Equal(t, target.ID, f.ID)
}

func TestJoin_RequiresRuleAcceptance(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &foyerRepoMock{}, &userRepoMock{}, &txManagerMock{})

	_, err := svc.Join(context.Background(), uuid.New(), JoinInput{Code: "ABCD2345", AcceptRule: false})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestJoin_UnknownCode(t *testing.T) {
	t.Parallel()

	foyers := &foyerRepoMock{
		GetByCodeFunc: func(ctx context.Context, code string) (*domain.Foyer, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), foyers, &userRepoMock{}, &txManagerMock{})

	_, err := svc.Join(context.Background(), uuid.New(), JoinInput{Code: "ZZZZ9999", AcceptRule: true})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJoin_AlreadyMember(t *testing.T) {
	t.Parallel()

	foyers := &foyerRepoMock{
		GetByCodeFunc: func(ctx context.Context, code string) (*domain.Foyer, error) {
			return &domain.Foyer{ID: uuid.New(), Code: code}, nil
		},
		AddMemberFunc: func(ctx context.Context, uID, fID uuid.UUID) error {
			return domain.ErrAlreadyExists
		},
	}

	svc := NewService(testLogger(), foyers, &userRepoMock{}, &txManagerMock{})

	_, err := svc.Join(context.Background(), uuid.New(), JoinInput{Code: "ABCD2345", AcceptRule: true})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestHasAcceptedRule(t *testing.T) {
	t.Parallel()

	accepted := time.Now()
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, AcceptedFoyerRuleAt: &accepted}, nil
		},
	}

	svc := NewService(testLogger(), &foyerRepoMock{}, users, &txManagerMock{})

	ok, err := svc.HasAcceptedRule(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewInviteCode(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := newInviteCode()
		require.NoError(t, err)
		require.Len(t, code, domain.InviteCodeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should rarely collide")
}
