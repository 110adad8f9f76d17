package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelIdea is a trip suggestion shared within a foyer, rankable by votes.
type TravelIdea struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Location    *string
	Votes       int
	FoyerID     uuid.UUID
	CreatorID   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
