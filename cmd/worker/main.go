package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dayoffhub/dayoff-notifier/internal/config"
	"github.com/dayoffhub/dayoff-notifier/internal/db"
	"github.com/dayoffhub/dayoff-notifier/internal/metrics"
	"github.com/dayoffhub/dayoff-notifier/internal/repository"
	"github.com/dayoffhub/dayoff-notifier/internal/sender"
	"github.com/dayoffhub/dayoff-notifier/internal/worker"
)

// The delivery worker runs as its own process so the admin API and the
// polling loop can be deployed and restarted independently. Exactly one
// instance may run at a time: queue rows carry no claim/lease, so two
// workers would double-dispatch the same PENDING batch.
func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	onSent, onFailed := m.WorkerHooks()

	queueRepo := repository.NewPgQueueRepository(pool)
	chat := sender.NewWhatsAppGateway(cfg.ChatGatewayURL, cfg.ChatTimeout)
	email := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	w := worker.New(queueRepo, chat, email, worker.Config{
		BatchSize:        cfg.WorkerBatchSize,
		DispatchInterval: cfg.DispatchInterval,
		DrainPause:       cfg.DrainPause,
		IdlePause:        cfg.IdlePause,
		FetchRetry:       cfg.FetchRetry,
		SinglePass:       cfg.RunOnce,
	}, logger, worker.MetricHooks{OnSent: onSent, OnFailed: onFailed})

	// In continuous mode, expose liveness and metrics for scraping.
	// Single-pass (cron-style) runs skip the listener entirely.
	if !cfg.RunOnce {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		go func() {
			addr := ":" + cfg.HTTPPort
			logger.Info("worker metrics listener starting", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener error", zap.Error(err))
			}
		}()
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("delivery worker error", zap.Error(err))
	}
	logger.Info("delivery worker stopped cleanly")
}
