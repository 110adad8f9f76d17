// Package task implements the Task repository using PostgreSQL.
package task

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var taskColumns = []string{
	"id", "title", "description", "foyer_id", "assigned_to_id",
	"points", "completed", "created_at", "updated_at",
}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new task and returns the persisted row.
func (r *Repo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("tasks").
		Columns("id", "title", "description", "foyer_id", "assigned_to_id", "points").
		Values(t.ID, t.Title, t.Description, t.FoyerID, t.AssignedToID, t.Points).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "task", t.ID)
	}

	created, err := scanTask(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "task", t.ID)
	}
	return created, nil
}

// GetByID returns a task by primary key, scoped to a foyer.
func (r *Repo) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}

	t, err := scanTask(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}
	return t, nil
}

// ListByFoyer returns the foyer's tasks, newest first, optionally
// filtered by completion state.
func (r *Repo) ListByFoyer(ctx context.Context, foyerID uuid.UUID, completed *bool) ([]domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := qb.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"foyer_id": foyerID}).
		OrderBy("created_at DESC")
	if completed != nil {
		builder = builder.Where(squirrel.Eq{"completed": *completed})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "task", foyerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "task", foyerID)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, postgres.MapError(err, "task", foyerID)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "task", foyerID)
	}
	return tasks, nil
}

// Update overwrites the mutable fields of a task.
func (r *Repo) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("tasks").
		Set("title", t.Title).
		Set("description", t.Description).
		Set("assigned_to_id", t.AssignedToID).
		Set("points", t.Points).
		Set("completed", t.Completed).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID, "foyer_id": t.FoyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "task", t.ID)
	}

	updated, err := scanTask(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "task", t.ID)
	}
	return updated, nil
}

// Delete removes a task, scoped to a foyer.
func (r *Repo) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("tasks").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "task", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(domain.ErrNotFound, "task", id)
	}
	return nil
}

func returning() string {
	return "RETURNING id, title, description, foyer_id, assigned_to_id, points, completed, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.FoyerID, &t.AssignedToID,
		&t.Points, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
