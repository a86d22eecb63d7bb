// Package board assembles categorized, ranked leaderboards and their summary
// from an aggregate.
package board

import (
	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/ranking"
	"github.com/okian/vlaboard/internal/domain/summary"
)

// Calvin is the content of calvin.json: one board per setting.
type Calvin struct {
	ABCDD *category.Board[*model.CalvinEntry] `json:"abcd_d"`
	ABCD  *category.Board[*model.CalvinEntry] `json:"abc_d"`
	DD    *category.Board[*model.CalvinEntry] `json:"d_d"`
}

// Setting returns the board of one CALVIN setting.
func (c *Calvin) Setting(s model.CalvinSetting) *category.Board[*model.CalvinEntry] {
	switch s {
	case model.SettingABCDD:
		return c.ABCDD
	case model.SettingABCD:
		return c.ABCD
	default:
		return c.DD
	}
}

// Result is every published artifact of one build.
type Result struct {
	Libero     *category.Board[*model.LiberoEntry]
	LiberoPlus *category.MixBoard[*model.LiberoPlusEntry]
	MetaWorld  *category.Board[*model.MetaWorldEntry]
	Calvin     Calvin
	Summary    summary.Summary
	Stats      aggregate.Stats
}

// Option applies a configuration option to Build.
type Option func(*config)

// WithTopN sets how many leaders the summary lists per leaderboard.
func WithTopN(n int) Option {
	return func(c *config) {
		c.summary = append(c.summary, summary.WithTopN(n))
	}
}

type config struct {
	summary []summary.Option
}

// Build categorizes and ranks every leaderboard of agg and summarizes them.
func Build(agg *aggregate.Aggregate, opts ...Option) *Result {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Result{
		Libero:     category.Split(agg.Libero()),
		LiberoPlus: category.SplitMixed(agg.LiberoPlus()),
		MetaWorld:  category.Split(agg.MetaWorld()),
		Calvin: Calvin{
			ABCDD: category.Split(agg.Calvin(model.SettingABCDD)),
			ABCD:  category.Split(agg.Calvin(model.SettingABCD)),
			DD:    category.Split(agg.Calvin(model.SettingDD)),
		},
		Stats: agg.Stats(),
	}
	ranking.Board(r.Libero)
	ranking.MixBoard(r.LiberoPlus)
	ranking.Board(r.MetaWorld)
	ranking.Board(r.Calvin.ABCDD)
	ranking.Board(r.Calvin.ABCD)
	ranking.Board(r.Calvin.DD)

	r.Summary = summary.Build(summary.Boards{
		Libero:     r.Libero,
		LiberoPlus: r.LiberoPlus,
		MetaWorld:  r.MetaWorld,
		Calvin:     [model.CalvinSettingCount]*category.Board[*model.CalvinEntry]{r.Calvin.ABCDD, r.Calvin.ABCD, r.Calvin.DD},
	}, cfg.summary...)
	return r
}

// Board returns the leaderboard published as b.
func (r *Result) Board(b model.Benchmark) (category.Sectioned, bool) {
	switch b {
	case model.Libero:
		return r.Libero, true
	case model.LiberoPlus:
		return r.LiberoPlus, true
	case model.MetaWorld:
		return r.MetaWorld, true
	case model.CalvinABCDD:
		return r.Calvin.ABCDD, true
	case model.CalvinABCD:
		return r.Calvin.ABCD, true
	case model.CalvinDD:
		return r.Calvin.DD, true
	default:
		return nil, false
	}
}

// Counts returns the number of entries per category of every leaderboard.
func (r *Result) Counts() map[model.Benchmark]map[category.Category]int {
	out := make(map[model.Benchmark]map[category.Category]int, len(model.Benchmarks))
	for _, b := range model.Benchmarks {
		board, _ := r.Board(b)
		counts := make(map[category.Category]int)
		for _, s := range board.Sections() {
			counts[s.Category] = len(s.Entries)
		}
		out[b] = counts
	}
	return out
}
