package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	apimw "github.com/dayoffhub/dayoff-notifier/internal/api/middleware"
	"github.com/dayoffhub/dayoff-notifier/internal/service"
)

// SchedulerHandler triggers queue-writer runs on operator demand.
type SchedulerHandler struct {
	svc    *service.SchedulerService
	logger *zap.Logger
	onRun  func() // metrics hook, may be nil
}

func NewSchedulerHandler(svc *service.SchedulerService, logger *zap.Logger, onRun func()) *SchedulerHandler {
	if onRun == nil {
		onRun = func() {}
	}
	return &SchedulerHandler{svc: svc, logger: logger, onRun: onRun}
}

// Run handles POST /api/v1/scheduler/run
//
// An optional ?today=YYYY-MM-DD query parameter overrides the run date,
// which is useful for dry-runs against upcoming windows.
func (h *SchedulerHandler) Run(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC()
	if v := r.URL.Query().Get("today"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "today must be YYYY-MM-DD")
			return
		}
		today = parsed
	}

	h.onRun()
	report, err := h.svc.Run(r.Context(), today)
	if err != nil {
		h.logger.Error("scheduler run failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "scheduler run failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"summary":   report.Summary(),
		"processed": report.Processed,
		"created":   report.Created,
		"failures":  report.Failures,
	})
}
