package repository

import (
	"context"
	"sync"
	"time"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
)

// MockQueueRepository is a hand-written, in-memory implementation of
// QueueRepository used in unit tests. No mock-generation library needed.
type MockQueueRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.QueueEntry
	order   []string // insertion order, mirrors ORDER BY created_at ASC

	// Optional error overrides — set in tests to simulate failure paths.
	CreateErr error

	// FetchPendingErrs is consumed one per FetchPending call, letting a
	// test fail the first fetch and succeed on the retry.
	FetchPendingErrs []error
}

func NewMockQueueRepository() *MockQueueRepository {
	return &MockQueueRepository{entries: make(map[string]*domain.QueueEntry)}
}

func (m *MockQueueRepository) Create(_ context.Context, e *domain.QueueEntry) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *e
	m.entries[e.ID] = &clone
	m.order = append(m.order, e.ID)
	return nil
}

func (m *MockQueueRepository) GetByID(_ context.Context, id string) (*domain.QueueEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *MockQueueRepository) List(_ context.Context, f domain.ListFilter) ([]*domain.QueueEntry, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.QueueEntry
	for _, id := range m.order {
		e := m.entries[id]
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		if f.Channel != nil && e.Channel != *f.Channel {
			continue
		}
		clone := *e
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (m *MockQueueRepository) FetchPending(_ context.Context, limit int) ([]*domain.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.FetchPendingErrs) > 0 {
		err := m.FetchPendingErrs[0]
		m.FetchPendingErrs = m.FetchPendingErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	var result []*domain.QueueEntry
	for _, id := range m.order {
		e := m.entries[id]
		if e.Status != domain.StatusPending {
			continue
		}
		clone := *e
		result = append(result, &clone)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *MockQueueRepository) MarkSent(_ context.Context, id string, at time.Time) error {
	return m.resolve(id, domain.StatusSent, nil, at)
}

func (m *MockQueueRepository) MarkError(_ context.Context, id, errMsg string, at time.Time) error {
	return m.resolve(id, domain.StatusError, &errMsg, at)
}

func (m *MockQueueRepository) resolve(id string, to domain.Status, errMsg *string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || !domain.CanTransition(domain.WriterDelivery, e.Status, to) {
		return domain.ErrInvalidTransition
	}
	e.Status = to
	e.ErrorLog = errMsg
	e.UpdatedAt = at
	return nil
}

func (m *MockQueueRepository) MarkResponded(_ context.Context, id string, confirmed time.Time, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !domain.CanTransition(domain.WriterConfirmation, e.Status, domain.StatusResponded) {
		return domain.ErrInvalidTransition
	}
	e.Status = domain.StatusResponded
	e.ConfirmedDate = &confirmed
	e.UpdatedAt = at
	return nil
}

func (m *MockQueueRepository) CountByStatus(_ context.Context) (domain.StatusCounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var c domain.StatusCounts
	for _, e := range m.entries {
		switch e.Status {
		case domain.StatusPending:
			c.Pending++
		case domain.StatusSent:
			c.Sent++
		case domain.StatusError:
			c.Error++
		case domain.StatusResponded:
			c.Responded++
		}
	}
	return c, nil
}

func (m *MockQueueRepository) Purge(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = make(map[string]*domain.QueueEntry)
	m.order = nil
	return n, nil
}
