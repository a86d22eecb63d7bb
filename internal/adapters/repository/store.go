// Package repository holds the most recently built leaderboards for serving.
package repository

import (
	"context"
	"time"

	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/internal/domain/board"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/summary"
)

// Entry is one published leaderboard row.
type Entry struct {
	Benchmark model.Benchmark   `json:"benchmark"`
	Category  category.Category `json:"category"`
	Rank      int               `json:"rank"`
	Name      string            `json:"name"`
	Score     model.Score       `json:"score"`
	Detail    model.Ranked      `json:"detail"`
}

// Info describes the published build.
type Info struct {
	RunID   string                                        `json:"run_id"`
	BuiltAt time.Time                                     `json:"built_at"`
	Stats   aggregate.Stats                               `json:"stats"`
	Counts  map[model.Benchmark]map[category.Category]int `json:"counts"`
}

// Store provides read access to the published build and replaces it atomically.
type Store interface {
	// Publish replaces the served build with r.
	Publish(ctx context.Context, runID string, r *board.Result) (Info, error)

	// Leaderboard returns the entries of one benchmark in board order. An
	// empty category selects every category; a zero limit returns all entries.
	Leaderboard(ctx context.Context, b model.Benchmark, c category.Category, limit int) ([]Entry, error)

	// Rank returns every entry of a model on one benchmark. LIBERO-Plus may
	// hold several. Returns ErrNotFound if the model is not listed.
	Rank(ctx context.Context, b model.Benchmark, name string) ([]Entry, error)

	// Summary returns the data.json content of the published build.
	Summary(ctx context.Context) (summary.Summary, error)

	// Info describes the published build.
	Info(ctx context.Context) (Info, error)

	// Count returns the number of models in the published build.
	Count(ctx context.Context) int
}
