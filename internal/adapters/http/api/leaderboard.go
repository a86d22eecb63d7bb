// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

type leaderboardResponse struct {
	Benchmark model.Benchmark   `json:"benchmark"`
	Category  category.Category `json:"category,omitempty"`
	Count     int               `json:"count"`
	Entries   []Entry           `json:"entries"`
}

// HandleGetLeaderboard handles GET /leaderboard/{benchmark}?category=C&limit=N.
// Without a limit every entry is returned, up to the configured maximum.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	b := model.Benchmark(r.PathValue("benchmark"))

	var c category.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		parsed, err := category.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_category", err)
			return
		}
		c = parsed
	}

	limit := h.maxLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit", fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: limit exceeds %d", ErrBadRequest, h.maxLimit))
			return
		}
		limit = n
	}

	entries, err := h.deps.Leaderboard(r.Context(), b, c, limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{
		Benchmark: b,
		Category:  c,
		Count:     len(entries),
		Entries:   entries,
	})
}
