package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	PasswordHash        string
	AvatarURL           *string
	PushToken           *string
	Points              int
	AcceptedFoyerRuleAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasAcceptedRule reports whether the user has accepted a foyer rule.
// Joining or creating a foyer implies acceptance.
func (u *User) HasAcceptedRule() bool {
	return u.AcceptedFoyerRuleAt != nil
}

// LeaderboardEntry is a member's row in the foyer leaderboard.
type LeaderboardEntry struct {
	UserID uuid.UUID
	Name   string
	Points int
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
