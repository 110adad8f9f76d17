package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a household chore worth points for whoever it is assigned to.
type Task struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	FoyerID      uuid.UUID
	AssignedToID *uuid.UUID
	Points       int
	Completed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
