// Package foyer implements household creation, joining by invite code,
// membership queries and the points leaderboard.
package foyer

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// codeAlphabet is the character set for invitation codes. No lowercase:
// codes are meant to be read aloud and typed on a phone.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// foyerRepo defines the foyer repository interface needed by the service.
type foyerRepo interface {
	Create(ctx context.Context, f *domain.Foyer) (*domain.Foyer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Foyer, error)
	GetByCode(ctx context.Context, code string) (*domain.Foyer, error)
	AddMember(ctx context.Context, userID, foyerID uuid.UUID) error
	IsMember(ctx context.Context, userID, foyerID uuid.UUID) (bool, error)
	FirstFoyerID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Foyer, error)
	MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

// userRepo defines the user repository interface needed by the service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetRuleAccepted(ctx context.Context, id uuid.UUID, at time.Time) error
	Leaderboard(ctx context.Context, foyerID uuid.UUID) ([]domain.LeaderboardEntry, error)
}

// txManager defines the transaction manager interface needed by the service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements foyer operations.
type Service struct {
	log    *slog.Logger
	foyers foyerRepo
	users  userRepo
	tx     txManager
}

// NewService creates a new foyer service instance.
func NewService(logger *slog.Logger, foyers foyerRepo, users userRepo, tx txManager) *Service {
	return &Service{
		log:    logger.With("service", "foyer"),
		foyers: foyers,
		users:  users,
		tx:     tx,
	}
}

// ActiveFoyerID returns the user's active foyer (earliest joined).
// domain.ErrNotFound when the user belongs to no foyer.
func (s *Service) ActiveFoyerID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return s.foyers.FirstFoyerID(ctx, userID)
}

// IsMember reports whether the user belongs to the foyer.
func (s *Service) IsMember(ctx context.Context, userID, foyerID uuid.UUID) (bool, error) {
	return s.foyers.IsMember(ctx, userID, foyerID)
}

// HasAcceptedRule reports whether the user has accepted a foyer rule.
func (s *Service) HasAcceptedRule(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("foyer.HasAcceptedRule: %w", err)
	}
	return user.HasAcceptedRule(), nil
}

// Get returns a foyer by ID.
func (s *Service) Get(ctx context.Context, foyerID uuid.UUID) (*domain.Foyer, error) {
	f, err := s.foyers.GetByID(ctx, foyerID)
	if err != nil {
		return nil, fmt.Errorf("foyer.Get: %w", err)
	}
	return f, nil
}

// UserFoyers returns every foyer the user belongs to, joined-first.
func (s *Service) UserFoyers(ctx context.Context, userID uuid.UUID) ([]domain.Foyer, error) {
	foyers, err := s.foyers.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("foyer.UserFoyers: %w", err)
	}
	return foyers, nil
}

// Leaderboard returns the foyer's members ordered by points.
func (s *Service) Leaderboard(ctx context.Context, foyerID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	entries, err := s.users.Leaderboard(ctx, foyerID)
	if err != nil {
		return nil, fmt.Errorf("foyer.Leaderboard: %w", err)
	}
	return entries, nil
}

// MemberPushTokens returns push tokens of the foyer's members except the
// acting user.
func (s *Service) MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error) {
	return s.foyers.MemberPushTokens(ctx, foyerID, excludeUserID)
}

// newInviteCode generates a random invitation code.
func newInviteCode() (string, error) {
	buf := make([]byte, domain.InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
