package handlers

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"kegiatan-kampus/internal/http/respond"
	"kegiatan-kampus/internal/logging"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db       Pinger
	draining atomic.Bool
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Drain makes Ready fail so load balancers stop routing before shutdown.
func (h *HealthHandler) Drain() {
	h.draining.Store(true)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, respond.Envelope{"status": "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.draining.Load() {
		respond.JSON(w, http.StatusServiceUnavailable, respond.Envelope{"status": "shutting_down"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Readiness check failed")
		respond.JSON(w, http.StatusServiceUnavailable, respond.Envelope{"status": "unavailable"})
		return
	}
	respond.JSON(w, http.StatusOK, respond.Envelope{"status": "ok"})
}
