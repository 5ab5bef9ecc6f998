package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dayoffhub/dayoff-notifier/internal/api/handler"
	apimw "github.com/dayoffhub/dayoff-notifier/internal/api/middleware"
	"github.com/dayoffhub/dayoff-notifier/internal/service"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	queueSvc *service.QueueService,
	schedulerSvc *service.SchedulerService,
	reg prometheus.Gatherer,
	onSchedulerRun func(),
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)          // recover panics, return 500
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body
	r.Use(apimw.CorrelationID)      // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))

	// --- handler instances ---
	qh := handler.NewQueueHandler(queueSvc, logger)
	sh := handler.NewSchedulerHandler(schedulerSvc, logger, onSchedulerRun)
	hh := handler.NewHealthHandler()

	// --- routes ---
	r.Get("/health", hh.Health)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scheduler/run", sh.Run)

		// Queue — note: /counts must be registered before /{id}
		// so chi does not treat the literal string "counts" as an ID.
		r.Get("/queue/counts", qh.Counts)
		r.Get("/queue", qh.List)
		r.Get("/queue/{id}", qh.GetByID)
		r.Post("/queue/{id}/confirm", qh.Confirm)
		r.Delete("/queue", qh.Purge)
	})

	return r
}
