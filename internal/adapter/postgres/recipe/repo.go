// Package recipe implements the Recipe repository using PostgreSQL.
package recipe

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var recipeColumns = []string{
	"id", "title", "description", "ingredients", "instructions",
	"votes", "foyer_id", "creator_id", "created_at", "updated_at",
}

// Repo provides recipe persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new recipe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new recipe and returns the persisted row.
func (r *Repo) Create(ctx context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("recipes").
		Columns("id", "title", "description", "ingredients", "instructions", "foyer_id", "creator_id").
		Values(rec.ID, rec.Title, rec.Description, rec.Ingredients, rec.Instructions, rec.FoyerID, rec.CreatorID).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "recipe", rec.ID)
	}

	created, err := scanRecipe(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "recipe", rec.ID)
	}
	return created, nil
}

// GetByID returns a recipe by primary key, scoped to a foyer.
func (r *Repo) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(recipeColumns...).
		From("recipes").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}

	rec, err := scanRecipe(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}
	return rec, nil
}

// ListByFoyer returns the foyer's recipes ordered by votes, then recency.
func (r *Repo) ListByFoyer(ctx context.Context, foyerID uuid.UUID) ([]domain.Recipe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(recipeColumns...).
		From("recipes").
		Where(squirrel.Eq{"foyer_id": foyerID}).
		OrderBy("votes DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "recipe", foyerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "recipe", foyerID)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, postgres.MapError(err, "recipe", foyerID)
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "recipe", foyerID)
	}
	return recipes, nil
}

// Update overwrites the mutable fields of a recipe.
func (r *Repo) Update(ctx context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("recipes").
		Set("title", rec.Title).
		Set("description", rec.Description).
		Set("ingredients", rec.Ingredients).
		Set("instructions", rec.Instructions).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rec.ID, "foyer_id": rec.FoyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "recipe", rec.ID)
	}

	updated, err := scanRecipe(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "recipe", rec.ID)
	}
	return updated, nil
}

// IncrementVotes adds one vote to the recipe and returns the updated row.
// The increment happens in SQL, so concurrent votes never lose updates.
func (r *Repo) IncrementVotes(ctx context.Context, foyerID, id uuid.UUID) (*domain.Recipe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("recipes").
		Set("votes", squirrel.Expr("votes + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}

	updated, err := scanRecipe(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}
	return updated, nil
}

// Delete removes a recipe, scoped to a foyer.
func (r *Repo) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("recipes").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "recipe", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "recipe", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(domain.ErrNotFound, "recipe", id)
	}
	return nil
}

func returning() string {
	return "RETURNING id, title, description, ingredients, instructions, votes, foyer_id, creator_id, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*domain.Recipe, error) {
	var rec domain.Recipe
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Ingredients, &rec.Instructions,
		&rec.Votes, &rec.FoyerID, &rec.CreatorID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
