// Package foyer implements the Foyer repository using PostgreSQL.
package foyer

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var foyerColumns = []string{"id", "name", "code", "rule", "created_at", "updated_at"}

// Repo provides foyer and membership persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new foyer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new foyer and returns the persisted row.
func (r *Repo) Create(ctx context.Context, f *domain.Foyer) (*domain.Foyer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("foyers").
		Columns("id", "name", "code", "rule").
		Values(f.ID, f.Name, f.Code, f.Rule).
		Suffix("RETURNING id, name, code, rule, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "foyer", f.ID)
	}

	created, err := scanFoyer(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "foyer", f.ID)
	}
	return created, nil
}

// GetByID returns a foyer by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Foyer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(foyerColumns...).
		From("foyers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "foyer", id)
	}

	f, err := scanFoyer(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "foyer", id)
	}
	return f, nil
}

// GetByCode returns a foyer by its invitation code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Foyer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(foyerColumns...).
		From("foyers").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "foyer", uuid.Nil)
	}

	f, err := scanFoyer(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "foyer", uuid.Nil)
	}
	return f, nil
}

// AddMember links a user to a foyer. The database unique constraint on
// (user_id, foyer_id) turns a duplicate join into domain.ErrAlreadyExists,
// which also defeats concurrent double-joins.
func (r *Repo) AddMember(ctx context.Context, userID, foyerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("user_foyers").
		Columns("user_id", "foyer_id").
		Values(userID, foyerID).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "membership", foyerID)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "membership", foyerID)
	}
	return nil
}

// IsMember reports whether the user belongs to the foyer.
func (r *Repo) IsMember(ctx context.Context, userID, foyerID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("1").
		From("user_foyers").
		Where(squirrel.Eq{"user_id": userID, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return false, postgres.MapError(err, "membership", foyerID)
	}

	var one int
	err = q.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		mapped := postgres.MapError(err, "membership", foyerID)
		if errors.Is(mapped, domain.ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

// FirstFoyerID returns the user's earliest-joined foyer, the "active" one
// for foyer-scoped routes. domain.ErrNotFound when the user has none.
func (r *Repo) FirstFoyerID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("foyer_id").
		From("user_foyers").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("joined_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "membership", userID)
	}

	var foyerID uuid.UUID
	if err := q.QueryRow(ctx, sql, args...).Scan(&foyerID); err != nil {
		return uuid.Nil, postgres.MapError(err, "membership", userID)
	}
	return foyerID, nil
}

// ListByUser returns all foyers the user belongs to, joined-first order.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Foyer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("f.id", "f.name", "f.code", "f.rule", "f.created_at", "f.updated_at").
		From("foyers f").
		Join("user_foyers uf ON uf.foyer_id = f.id").
		Where(squirrel.Eq{"uf.user_id": userID}).
		OrderBy("uf.joined_at ASC").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "foyer", userID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "foyer", userID)
	}
	defer rows.Close()

	foyers := []domain.Foyer{}
	for rows.Next() {
		var f domain.Foyer
		if err := rows.Scan(&f.ID, &f.Name, &f.Code, &f.Rule, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "foyer", userID)
		}
		foyers = append(foyers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "foyer", userID)
	}
	return foyers, nil
}

// MemberPushTokens returns the non-null push tokens of the foyer's members,
// excluding the acting user so people are not notified about their own actions.
func (r *Repo) MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select("u.push_token").
		From("users u").
		Join("user_foyers uf ON uf.user_id = u.id").
		Where(squirrel.Eq{"uf.foyer_id": foyerID}).
		Where(squirrel.NotEq{"u.id": excludeUserID}).
		Where("u.push_token IS NOT NULL").
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "foyer", foyerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "foyer", foyerID)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, postgres.MapError(err, "foyer", foyerID)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "foyer", foyerID)
	}
	return tokens, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoyer(row rowScanner) (*domain.Foyer, error) {
	var f domain.Foyer
	err := row.Scan(&f.ID, &f.Name, &f.Code, &f.Rule, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
