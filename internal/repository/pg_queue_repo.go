package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

const queueColumns = `id, channel, recipient_type, recipient, subject, body,
	       suggested_date, applied_rule, person_id, person_name, status,
	       error_log, confirmed_date, created_at, updated_at`

type pgQueueRepository struct {
	pool *pgxpool.Pool
}

// NewPgQueueRepository returns a QueueRepository backed by PostgreSQL.
func NewPgQueueRepository(pool *pgxpool.Pool) QueueRepository {
	return &pgQueueRepository{pool: pool}
}

func (r *pgQueueRepository) Create(ctx context.Context, e *domain.QueueEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO delivery_queue
			(id, channel, recipient_type, recipient, subject, body,
			 suggested_date, applied_rule, person_id, person_name, status,
			 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		e.ID, e.Channel, e.RecipientType, e.Recipient, e.Subject, e.Body,
		e.SuggestedDate, e.AppliedRule, e.PersonID, e.PersonName, e.Status,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert queue entry: %w", err)
	}
	return nil
}

func (r *pgQueueRepository) GetByID(ctx context.Context, id string) (*domain.QueueEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+queueColumns+`
		FROM delivery_queue WHERE id = $1`, id)

	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

func (r *pgQueueRepository) List(ctx context.Context, f domain.ListFilter) ([]*domain.QueueEntry, int, error) {
	where, args := buildListWhere(f)
	offset := (f.Page - 1) * f.Limit

	// Count total matching rows for pagination metadata.
	var total int
	countQuery := "SELECT COUNT(*) FROM delivery_queue" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count queue entries: %w", err)
	}

	// Append pagination args after the WHERE args.
	args = append(args, f.Limit, offset)
	limitPlaceholder := fmt.Sprintf("$%d", len(args)-1)
	offsetPlaceholder := fmt.Sprintf("$%d", len(args))

	query := fmt.Sprintf(`
		SELECT %s
		FROM delivery_queue%s
		ORDER BY created_at DESC
		LIMIT %s OFFSET %s`, queueColumns, where, limitPlaceholder, offsetPlaceholder)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list queue entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	return entries, total, err
}

func (r *pgQueueRepository) FetchPending(ctx context.Context, limit int) ([]*domain.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+queueColumns+`
		FROM delivery_queue
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// The status guards in the WHERE clauses below are the SQL form of
// domain.CanTransition for the delivery writer.

func (r *pgQueueRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE delivery_queue
		SET status = 'SENT', error_log = NULL, updated_at = $1
		WHERE id = $2 AND status = 'PENDING'`, at, id)
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *pgQueueRepository) MarkError(ctx context.Context, id, errMsg string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE delivery_queue
		SET status = 'ERROR', error_log = $1, updated_at = $2
		WHERE id = $3 AND status = 'PENDING'`, errMsg, at, id)
	if err != nil {
		return fmt.Errorf("mark error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *pgQueueRepository) MarkResponded(ctx context.Context, id string, confirmed time.Time, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE delivery_queue
		SET status = 'RESPONDED', confirmed_date = $1, updated_at = $2
		WHERE id = $3`, confirmed, at, id)
	if err != nil {
		return fmt.Errorf("mark responded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *pgQueueRepository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	var c domain.StatusCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'SENT'),
			COUNT(*) FILTER (WHERE status = 'ERROR'),
			COUNT(*) FILTER (WHERE status = 'RESPONDED')
		FROM delivery_queue`).Scan(&c.Pending, &c.Sent, &c.Error, &c.Responded)
	if err != nil {
		return domain.StatusCounts{}, fmt.Errorf("count by status: %w", err)
	}
	return c, nil
}

func (r *pgQueueRepository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM delivery_queue`)
	if err != nil {
		return 0, fmt.Errorf("purge queue: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---- helpers ----

// scanEntry reads a single queue row from any pgx row type.
func scanEntry(row pgx.Row) (*domain.QueueEntry, error) {
	var e domain.QueueEntry
	err := row.Scan(
		&e.ID, &e.Channel, &e.RecipientType, &e.Recipient, &e.Subject, &e.Body,
		&e.SuggestedDate, &e.AppliedRule, &e.PersonID, &e.PersonName, &e.Status,
		&e.ErrorLog, &e.ConfirmedDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.QueueEntry, error) {
	var result []*domain.QueueEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// buildListWhere builds a parameterised WHERE clause from a ListFilter.
func buildListWhere(f domain.ListFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, val any) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.Channel != nil {
		add("channel = $%d", *f.Channel)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
