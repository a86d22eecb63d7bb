// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	repository "github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/summary"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LeaderboardDependencies
	RankDependencies
	SummaryDependencies
	StatsProvider
}

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, b model.Benchmark, c category.Category, limit int) ([]Entry, error)
}

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Rank(ctx context.Context, b model.Benchmark, name string) ([]Entry, error)
}

// SummaryDependencies defines the interface for the data.json summary.
type SummaryDependencies interface {
	Summary(ctx context.Context) (summary.Summary, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = repository.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	summaryHandler     *SummaryHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(deps),
		statsHandler:       NewStatsHandler(deps),
		summaryHandler:     NewSummaryHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("GET /leaderboard/{benchmark}", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("GET /rank/{benchmark}/{model...}", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}
