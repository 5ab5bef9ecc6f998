package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/repository"
	"github.com/dayoffhub/dayoff-notifier/internal/sender"
)

// Subject used for EMAIL entries whose rendered subject is empty.
const fallbackSubject = "Day-off notice"

// Config holds the worker's operational knobs. These are tuning
// parameters, not part of the delivery contract.
type Config struct {
	BatchSize        int           // max rows fetched per cycle
	DispatchInterval time.Duration // spacing between sends
	DrainPause       time.Duration // pause after a full batch
	IdlePause        time.Duration // pause when the queue ran dry
	FetchRetry       time.Duration // backoff when the store is unreachable
	SinglePass       bool          // stop cleanly once the queue drains
}

// DefaultConfig mirrors the production settings: small batches with a
// fixed inter-message delay, chosen to stay under the chat transport's
// informal rate limits.
func DefaultConfig() Config {
	return Config{
		BatchSize:        5,
		DispatchInterval: 2 * time.Second,
		DrainPause:       5 * time.Second,
		IdlePause:        60 * time.Second,
		FetchRetry:       10 * time.Second,
	}
}

// MetricHooks carries the metric callback functions injected by main.
// Using a struct keeps the constructor signature clean.
type MetricHooks struct {
	OnSent   func(channel domain.Channel, latency time.Duration)
	OnFailed func(channel domain.Channel)
}

// DeliveryWorker drains PENDING queue rows sequentially: fetch a batch,
// dispatch each row through the matching channel adapter, record SENT
// or ERROR per row. Delivery is deliberately single-threaded — the
// dispatch pacing is the backpressure mechanism, so parallelism would
// defeat it. Run exactly one instance; rows carry no claim/lease.
type DeliveryWorker struct {
	repo   repository.QueueRepository
	chat   sender.ChatSender
	email  sender.EmailSender
	cfg    Config
	pacer  *rate.Limiter
	logger *zap.Logger

	onSent   func(domain.Channel, time.Duration)
	onFailed func(domain.Channel)

	// Injected clock, overridden in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

// New constructs a DeliveryWorker. Hook functions are optional (nil = no-op).
func New(
	repo repository.QueueRepository,
	chat sender.ChatSender,
	email sender.EmailSender,
	cfg Config,
	logger *zap.Logger,
	hooks MetricHooks,
) *DeliveryWorker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if hooks.OnSent == nil {
		hooks.OnSent = func(domain.Channel, time.Duration) {}
	}
	if hooks.OnFailed == nil {
		hooks.OnFailed = func(domain.Channel) {}
	}
	return &DeliveryWorker{
		repo:     repo,
		chat:     chat,
		email:    email,
		cfg:      cfg,
		pacer:    rate.NewLimiter(rate.Every(cfg.DispatchInterval), 1),
		logger:   logger,
		onSent:   hooks.OnSent,
		onFailed: hooks.OnFailed,
		now:      func() time.Time { return time.Now().UTC() },
		sleep:    sleepCtx,
	}
}

// Run blocks until ctx is cancelled or, in single-pass mode, until the
// queue drains. A fetch failure is transient infrastructure trouble:
// it is retried on a fixed delay and never terminates the loop.
func (w *DeliveryWorker) Run(ctx context.Context) error {
	w.logger.Info("delivery worker started",
		zap.Int("batch_size", w.cfg.BatchSize),
		zap.Bool("single_pass", w.cfg.SinglePass),
	)

	for {
		batch, err := w.repo.FetchPending(ctx, w.cfg.BatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("queue fetch failed", zap.Error(err))
			if !w.sleep(ctx, w.cfg.FetchRetry) {
				return ctx.Err()
			}
			continue
		}

		for _, entry := range batch {
			if err := w.pacer.Wait(ctx); err != nil {
				return ctx.Err()
			}
			w.dispatch(ctx, entry)
		}

		if len(batch) == w.cfg.BatchSize {
			// A full batch means the store may hold more rows; keep draining.
			if !w.sleep(ctx, w.cfg.DrainPause) {
				return ctx.Err()
			}
			continue
		}

		if w.cfg.SinglePass {
			w.logger.Info("queue drained, stopping")
			return nil
		}
		if !w.sleep(ctx, w.cfg.IdlePause) {
			return ctx.Err()
		}
	}
}

// dispatch sends one entry and records exactly one terminal status.
// A per-item failure is captured on the row and never aborts the batch.
func (w *DeliveryWorker) dispatch(ctx context.Context, entry *domain.QueueEntry) {
	start := w.now()
	log := w.logger.With(
		zap.String("entry_id", entry.ID),
		zap.String("channel", string(entry.Channel)),
		zap.String("person", entry.PersonName),
	)

	if err := w.send(ctx, entry); err != nil {
		log.Warn("dispatch failed", zap.Error(err))
		if markErr := w.repo.MarkError(ctx, entry.ID, err.Error(), w.now()); markErr != nil {
			log.Error("failed to record dispatch error", zap.Error(markErr))
		}
		w.onFailed(entry.Channel)
		return
	}

	if err := w.repo.MarkSent(ctx, entry.ID, w.now()); err != nil {
		// The message left but the status write failed; the row stays
		// PENDING and will be re-dispatched next cycle. Adapters must
		// tolerate this at-least-once behaviour.
		log.Error("failed to mark as sent", zap.Error(err))
		return
	}

	elapsed := w.now().Sub(start)
	w.onSent(entry.Channel, elapsed)
	log.Info("notice sent", zap.Duration("latency", elapsed))
}

func (w *DeliveryWorker) send(ctx context.Context, entry *domain.QueueEntry) error {
	switch entry.Channel {
	case domain.ChannelChat:
		number := normalizeNumber(entry.Recipient)
		if number == "" {
			return errors.New("chat recipient number is empty")
		}
		return w.chat.SendChat(ctx, number, entry.Body)

	case domain.ChannelEmail:
		if entry.Recipient == "" {
			return errors.New("email recipient address is empty")
		}
		subject := fallbackSubject
		if entry.Subject != nil && *entry.Subject != "" {
			subject = *entry.Subject
		}
		return w.email.SendEmail(ctx, entry.Recipient, subject, entry.Body)
	}
	return fmt.Errorf("unknown channel %q", entry.Channel)
}

// normalizeNumber strips everything but digits from a phone number.
func normalizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sleepCtx waits d or until ctx is cancelled; reports whether the full
// duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
