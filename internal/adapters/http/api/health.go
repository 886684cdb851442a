// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/cobiadigital/school-pay-visualization/internal/app"
	"github.com/cobiadigital/school-pay-visualization/pkg/metrics"
)

// HealthProvider reports service health.
type HealthProvider interface {
	Health() service.Health
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	deps HealthProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthProvider) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz. It answers 503 until the dataset
// is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	health := h.deps.Health()
	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

// MetricsHandler serves the custom Prometheus registry.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
