// Package shopping implements the ShoppingItem repository using PostgreSQL.
package shopping

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var itemColumns = []string{
	"id", "name", "quantity", "purchased", "foyer_id",
	"assigned_to_id", "added_by_id", "created_at", "updated_at",
}

// Repo provides shopping-list persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new shopping repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new shopping item and returns the persisted row.
func (r *Repo) Create(ctx context.Context, it *domain.ShoppingItem) (*domain.ShoppingItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("shopping_items").
		Columns("id", "name", "quantity", "foyer_id", "assigned_to_id", "added_by_id").
		Values(it.ID, it.Name, it.Quantity, it.FoyerID, it.AssignedToID, it.AddedByID).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", it.ID)
	}

	created, err := scanItem(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", it.ID)
	}
	return created, nil
}

// GetByID returns a shopping item by primary key, scoped to a foyer.
func (r *Repo) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.ShoppingItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(itemColumns...).
		From("shopping_items").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", id)
	}

	it, err := scanItem(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", id)
	}
	return it, nil
}

// ListByFoyer returns the foyer's shopping list, newest first, optionally
// filtered by purchase state.
func (r *Repo) ListByFoyer(ctx context.Context, foyerID uuid.UUID, purchased *bool) ([]domain.ShoppingItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := qb.Select(itemColumns...).
		From("shopping_items").
		Where(squirrel.Eq{"foyer_id": foyerID}).
		OrderBy("created_at DESC")
	if purchased != nil {
		builder = builder.Where(squirrel.Eq{"purchased": *purchased})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", foyerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", foyerID)
	}
	defer rows.Close()

	items := []domain.ShoppingItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, postgres.MapError(err, "shopping_item", foyerID)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "shopping_item", foyerID)
	}
	return items, nil
}

// Update overwrites the mutable fields of a shopping item.
func (r *Repo) Update(ctx context.Context, it *domain.ShoppingItem) (*domain.ShoppingItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("shopping_items").
		Set("name", it.Name).
		Set("quantity", it.Quantity).
		Set("purchased", it.Purchased).
		Set("assigned_to_id", it.AssignedToID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": it.ID, "foyer_id": it.FoyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", it.ID)
	}

	updated, err := scanItem(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "shopping_item", it.ID)
	}
	return updated, nil
}

// Delete removes a shopping item, scoped to a foyer.
func (r *Repo) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("shopping_items").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "shopping_item", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "shopping_item", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(domain.ErrNotFound, "shopping_item", id)
	}
	return nil
}

func returning() string {
	return "RETURNING id, name, quantity, purchased, foyer_id, assigned_to_id, added_by_id, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.ShoppingItem, error) {
	var it domain.ShoppingItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Quantity, &it.Purchased, &it.FoyerID,
		&it.AssignedToID, &it.AddedByID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
