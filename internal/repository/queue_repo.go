package repository

import (
	"context"
	"time"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// QueueRepository defines all persistence operations for the delivery queue.
// The pgx implementation is in pg_queue_repo.go.
// Tests use a hand-written mock (mock_queue_repo.go).
type QueueRepository interface {
	Create(ctx context.Context, e *domain.QueueEntry) error
	GetByID(ctx context.Context, id string) (*domain.QueueEntry, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.QueueEntry, int, error)

	// FetchPending returns up to limit PENDING rows in insertion order.
	// Insertion order keeps worker cycles deterministic.
	FetchPending(ctx context.Context, limit int) ([]*domain.QueueEntry, error)

	// MarkSent and MarkError are the delivery worker's only writes.
	// Both are conditional on the row still being PENDING and return
	// domain.ErrInvalidTransition when it is not, so a second worker
	// instance (or a stale batch) can never double-resolve a row.
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkError(ctx context.Context, id, errMsg string, at time.Time) error

	// MarkResponded records the externally-driven confirmation. Allowed
	// from any status.
	MarkResponded(ctx context.Context, id string, confirmed time.Time, at time.Time) error

	CountByStatus(ctx context.Context) (domain.StatusCounts, error)

	// Purge deletes all queue rows (admin "clear history").
	Purge(ctx context.Context) (int64, error)
}
