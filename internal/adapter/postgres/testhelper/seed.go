package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// SeedUser inserts a user with a unique email and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, name string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "$2a$04$testhashnotarealbcrypthash1234567890abcdefgh",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.PasswordHash,
	)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}

	return u
}

// SeedFoyer inserts a foyer with a unique invite code and returns it.
func SeedFoyer(t *testing.T, pool *pgxpool.Pool, name string) *domain.Foyer {
	t.Helper()

	f := &domain.Foyer{
		ID:   uuid.New(),
		Name: name,
		Code: uuid.NewString()[:domain.InviteCodeLength],
		Rule: "wash your own dishes",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO foyers (id, name, code, rule) VALUES ($1, $2, $3, $4)`,
		f.ID, f.Name, f.Code, f.Rule,
	)
	if err != nil {
		t.Fatalf("testhelper: seed foyer: %v", err)
	}

	return f
}

// SeedMembership links a user to a foyer.
func SeedMembership(t *testing.T, pool *pgxpool.Pool, userID, foyerID uuid.UUID, joinedAt time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_foyers (user_id, foyer_id, joined_at) VALUES ($1, $2, $3)`,
		userID, foyerID, joinedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed membership: %v", err)
	}
}
