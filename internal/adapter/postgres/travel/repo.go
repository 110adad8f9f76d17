// Package travel implements the TravelIdea repository using PostgreSQL.
package travel

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ideaColumns = []string{
	"id", "title", "description", "location", "votes",
	"foyer_id", "creator_id", "created_at", "updated_at",
}

// Repo provides travel-idea persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new travel-idea repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new travel idea and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t *domain.TravelIdea) (*domain.TravelIdea, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("travel_ideas").
		Columns("id", "title", "description", "location", "foyer_id", "creator_id").
		Values(t.ID, t.Title, t.Description, t.Location, t.FoyerID, t.CreatorID).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", t.ID)
	}

	created, err := scanIdea(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", t.ID)
	}
	return created, nil
}

// GetByID returns a travel idea by primary key, scoped to a foyer.
func (r *Repo) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(ideaColumns...).
		From("travel_ideas").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", id)
	}

	t, err := scanIdea(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", id)
	}
	return t, nil
}

// ListByFoyer returns the foyer's travel ideas ordered by votes, then recency.
func (r *Repo) ListByFoyer(ctx context.Context, foyerID uuid.UUID) ([]domain.TravelIdea, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(ideaColumns...).
		From("travel_ideas").
		Where(squirrel.Eq{"foyer_id": foyerID}).
		OrderBy("votes DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", foyerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", foyerID)
	}
	defer rows.Close()

	ideas := []domain.TravelIdea{}
	for rows.Next() {
		t, err := scanIdea(rows)
		if err != nil {
			return nil, postgres.MapError(err, "travel_idea", foyerID)
		}
		ideas = append(ideas, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "travel_idea", foyerID)
	}
	return ideas, nil
}

// Update overwrites the mutable fields of a travel idea.
func (r *Repo) Update(ctx context.Context, t *domain.TravelIdea) (*domain.TravelIdea, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("travel_ideas").
		Set("title", t.Title).
		Set("description", t.Description).
		Set("location", t.Location).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID, "foyer_id": t.FoyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", t.ID)
	}

	updated, err := scanIdea(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", t.ID)
	}
	return updated, nil
}

// IncrementVotes adds one vote to the idea and returns the updated row.
func (r *Repo) IncrementVotes(ctx context.Context, foyerID, id uuid.UUID) (*domain.TravelIdea, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("travel_ideas").
		Set("votes", squirrel.Expr("votes + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", id)
	}

	updated, err := scanIdea(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "travel_idea", id)
	}
	return updated, nil
}

// Delete removes a travel idea, scoped to a foyer.
func (r *Repo) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("travel_ideas").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "travel_idea", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "travel_idea", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(domain.ErrNotFound, "travel_idea", id)
	}
	return nil
}

func returning() string {
	return "RETURNING id, title, description, location, votes, foyer_id, creator_id, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*domain.TravelIdea, error) {
	var t domain.TravelIdea
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Location, &t.Votes,
		&t.FoyerID, &t.CreatorID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
