package domain

import (
	"time"

	"github.com/google/uuid"
)

// InviteCodeLength is the length of generated foyer invitation codes.
const InviteCodeLength = 8

// Foyer is the household: the tenant boundary for tasks, shopping items,
// calendar events, recipes and travel ideas.
type Foyer struct {
	ID        uuid.UUID
	Name      string
	Code      string // unique invitation code
	Rule      string // house rule accepted by every member
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership links a user to a foyer. A user may belong to several foyers;
// the earliest membership is the "active" one for foyer-scoped routes.
// Uniqueness of (UserID, FoyerID) is enforced by the database, which is what
// makes concurrent join-by-code requests safe.
type Membership struct {
	UserID   uuid.UUID
	FoyerID  uuid.UUID
	JoinedAt time.Time
}
