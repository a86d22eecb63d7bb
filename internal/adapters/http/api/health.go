// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/okian/vlaboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	stats StatsProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(stats StatsProvider) *HealthHandler {
	return &HealthHandler{stats: stats}
}

type healthResponse struct {
	Status  string    `json:"status"`
	Ready   bool      `json:"ready"`
	RunID   string    `json:"run_id,omitempty"`
	BuiltAt time.Time `json:"built_at,omitzero"`
}

// HandleHealth handles GET /healthz. The process is live as soon as it
// serves; ready reports whether a build has been published.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if info, err := h.stats.Info(r.Context()); err == nil {
		resp.Ready = true
		resp.RunID = info.RunID
		resp.BuiltAt = info.BuiltAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleMetrics handles GET /metrics in the Prometheus exposition format.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	// Use our custom metrics registry to serve metrics
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
