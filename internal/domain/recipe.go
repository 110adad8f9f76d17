package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a foyer-shared recipe. Members can vote to rank favorites.
type Recipe struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	Ingredients  *string
	Instructions *string
	Votes        int
	FoyerID      uuid.UUID
	CreatorID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
