// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/okian/vlaboard/internal/domain/model"
)

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

type rankResponse struct {
	Benchmark model.Benchmark `json:"benchmark"`
	Model     string          `json:"model"`
	Entries   []Entry         `json:"entries"`
}

// HandleGetRank handles GET /rank/{benchmark}/{model} requests. A model may
// hold several LIBERO-Plus entries, so a list is always returned.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	b := model.Benchmark(r.PathValue("benchmark"))
	name := r.PathValue("model")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing model name", ErrBadRequest))
		return
	}
	entries, err := h.deps.Rank(r.Context(), b, name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankResponse{Benchmark: b, Model: name, Entries: entries})
}
