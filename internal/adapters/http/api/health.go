package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/echochamber/internal/domain/types"
	"github.com/okian/echochamber/pkg/metrics"
)

// UptimeProvider reports how long the service has been running.
type UptimeProvider interface {
	Uptime() time.Duration
}

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	uptime UptimeProvider
	now    func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(uptime UptimeProvider) *HealthHandler {
	return &HealthHandler{uptime: uptime, now: time.Now}
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, types.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Uptime:    h.uptime.Uptime().Seconds(),
	})
}

// MetricsHandler serves the Prometheus exposition from the custom registry.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
