package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/dayoffhub/dayoff-notifier/internal/api/middleware"
	"github.com/dayoffhub/dayoff-notifier/internal/domain"
	"github.com/dayoffhub/dayoff-notifier/internal/service"
)

// QueueHandler exposes the delivery queue to the admin UI: listing,
// status counts, the external confirmation entry point, and purge.
type QueueHandler struct {
	svc    *service.QueueService
	logger *zap.Logger
}

func NewQueueHandler(svc *service.QueueService, logger *zap.Logger) *QueueHandler {
	return &QueueHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/queue
func (h *QueueHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	entries, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list queue failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "failed to list queue entries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  entries,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// GetByID handles GET /api/v1/queue/{id}
func (h *QueueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// Counts handles GET /api/v1/queue/counts
func (h *QueueHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Counts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count queue entries")
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

type confirmRequest struct {
	ConfirmedDate string `json:"confirmed_date"` // YYYY-MM-DD
}

// Confirm handles POST /api/v1/queue/{id}/confirm
//
// This is the entry point for the external confirmation flow (form
// responses relayed by an operator or an integration). It is the only
// writer allowed to produce RESPONDED.
func (h *QueueHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := chi.URLParam(r, "id")
	e, err := h.svc.Confirm(r.Context(), id, req.ConfirmedDate)
	if err != nil {
		h.logger.Warn("confirm failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.String("id", id),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// Purge handles DELETE /api/v1/queue
func (h *QueueHandler) Purge(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Purge(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to purge queue")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func parseListFilter(r *http.Request) domain.ListFilter {
	q := r.URL.Query()
	filter := domain.ListFilter{Page: 1, Limit: 20}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 100 {
		filter.Limit = l
	}
	if s := q.Get("status"); s != "" {
		st := domain.Status(s)
		filter.Status = &st
	}
	if ch := q.Get("channel"); ch != "" {
		c := domain.Channel(ch)
		filter.Channel = &c
	}
	return filter
}
