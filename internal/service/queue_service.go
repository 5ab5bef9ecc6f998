package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/repository"
)

// QueueService exposes the admin-facing queue operations: listing,
// status counts, purge, and the externally-driven confirmation
// transition. The delivery worker does not go through this service.
type QueueService struct {
	repo   repository.QueueRepository
	logger *zap.Logger
}

func NewQueueService(repo repository.QueueRepository, logger *zap.Logger) *QueueService {
	return &QueueService{repo: repo, logger: logger}
}

func (s *QueueService) GetByID(ctx context.Context, id string) (*domain.QueueEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *QueueService) List(ctx context.Context, filter domain.ListFilter) ([]*domain.QueueEntry, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *QueueService) Counts(ctx context.Context) (domain.StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}

// Confirm records a supervisor's form response: the confirmed day-off
// date and the RESPONDED terminal status. Permitted from any status —
// a supervisor may answer even after a dispatch error was logged.
func (s *QueueService) Confirm(ctx context.Context, id, confirmedDate string) (*domain.QueueEntry, error) {
	confirmed, err := time.Parse("2006-01-02", confirmedDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	if err := s.repo.MarkResponded(ctx, id, confirmed, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.logger.Info("confirmation recorded",
		zap.String("id", id),
		zap.String("confirmed_date", confirmedDate),
	)
	return s.repo.GetByID(ctx, id)
}

// Purge deletes the whole send history and current queue.
func (s *QueueService) Purge(ctx context.Context) (int64, error) {
	n, err := s.repo.Purge(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("queue purged", zap.Int64("deleted", n))
	return n, nil
}
