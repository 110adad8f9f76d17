// Package event implements the CalendarEvent repository using PostgreSQL.
package event

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foyerapp/foyer-backend/internal/adapter/postgres"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

// maxListLimit bounds a single ListByFoyer page.
const maxListLimit = 1000

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var eventColumns = []string{
	"id", "title", "description", "start_at", "end_at", "recurrence",
	"foyer_id", "creator_id", "completed_by_id", "created_at", "updated_at",
}

// Repo provides calendar-event persistence backed by PostgreSQL.
// Only templates are stored; recurring occurrences are computed on read.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new calendar-event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new event template and returns the persisted row.
func (r *Repo) Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("calendar_events").
		Columns("id", "title", "description", "start_at", "end_at", "recurrence", "foyer_id", "creator_id").
		Values(e.ID, e.Title, e.Description, e.StartAt, e.EndAt, e.Recurrence.String(), e.FoyerID, e.CreatorID).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", e.ID)
	}

	created, err := scanEvent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", e.ID)
	}
	return created, nil
}

// GetByID returns an event template by primary key, scoped to a foyer.
func (r *Repo) GetByID(ctx context.Context, foyerID, id uuid.UUID) (*domain.CalendarEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(eventColumns...).
		From("calendar_events").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", id)
	}

	e, err := scanEvent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", id)
	}
	return e, nil
}

// ListByFoyer returns the foyer's event templates ordered by start time.
// Recurring templates are always included regardless of the window, since
// their occurrences may fall inside it; one-shot events are filtered by
// overlap with [from, to] when bounds are given.
func (r *Repo) ListByFoyer(ctx context.Context, foyerID uuid.UUID, from, to *time.Time) ([]domain.CalendarEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := qb.Select(eventColumns...).
		From("calendar_events").
		Where(squirrel.Eq{"foyer_id": foyerID})

	if from != nil {
		query = query.Where(squirrel.Or{
			squirrel.NotEq{"recurrence": domain.RecurrenceNone.String()},
			squirrel.GtOrEq{"end_at": *from},
		})
	}
	if to != nil {
		query = query.Where(squirrel.Or{
			squirrel.NotEq{"recurrence": domain.RecurrenceNone.String()},
			squirrel.LtOrEq{"start_at": *to},
		})
	}

	sql, args, err := query.
		OrderBy("start_at ASC", "created_at ASC").
		Limit(maxListLimit).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", foyerID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", foyerID)
	}
	defer rows.Close()

	events := []domain.CalendarEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, postgres.MapError(err, "calendar_event", foyerID)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "calendar_event", foyerID)
	}
	return events, nil
}

// Update overwrites the mutable fields of an event template.
func (r *Repo) Update(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("calendar_events").
		Set("title", e.Title).
		Set("description", e.Description).
		Set("start_at", e.StartAt).
		Set("end_at", e.EndAt).
		Set("recurrence", e.Recurrence.String()).
		Set("completed_by_id", e.CompletedByID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID, "foyer_id": e.FoyerID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", e.ID)
	}

	updated, err := scanEvent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "calendar_event", e.ID)
	}
	return updated, nil
}

// Delete removes an event template, scoped to a foyer.
func (r *Repo) Delete(ctx context.Context, foyerID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("calendar_events").
		Where(squirrel.Eq{"id": id, "foyer_id": foyerID}).
		ToSql()
	if err != nil {
		return postgres.MapError(err, "calendar_event", id)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "calendar_event", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(domain.ErrNotFound, "calendar_event", id)
	}
	return nil
}

func returning() string {
	return "RETURNING id, title, description, start_at, end_at, recurrence, foyer_id, creator_id, completed_by_id, created_at, updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.CalendarEvent, error) {
	var (
		e          domain.CalendarEvent
		recurrence string
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartAt, &e.EndAt, &recurrence,
		&e.FoyerID, &e.CreatorID, &e.CompletedByID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Recurrence = domain.Recurrence(recurrence)
	return &e, nil
}
