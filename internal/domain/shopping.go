package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingItem is one entry on the foyer's shared shopping list.
type ShoppingItem struct {
	ID           uuid.UUID
	Name         string
	Quantity     *string // numeric string > 0 when present
	Purchased    bool
	FoyerID      uuid.UUID
	AssignedToID *uuid.UUID
	AddedByID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
