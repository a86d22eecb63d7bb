// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	repository "github.com/okian/vlaboard/internal/adapters/repository"
)

// StatsProvider describes the published build.
type StatsProvider interface {
	Info(ctx context.Context) (repository.Info, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	info, err := h.statsProvider.Info(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
