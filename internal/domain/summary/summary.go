// Package summary builds the landing-page overview of every leaderboard.
package summary

import (
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/ranking"
	"github.com/okian/vlaboard/internal/domain/types"
)

// DefaultTopN is how many leaders each overview lists.
const DefaultTopN = 5

// Primary metric labels shown next to each leaderboard.
const (
	AverageSuccessRate = "Average Success Rate (%)"
	TotalSuccessRate   = "Total Success Rate (%)"
	AverageLength      = "Average Length (Avg. Len.)"
)

// CalvinDefault is the CALVIN setting the landing page reports.
const CalvinDefault = model.SettingABCD

const calvinDescription = "ABC-D Setting (Default)"

// Overview summarizes an ordinary leaderboard.
type Overview struct {
	TotalModels             int           `json:"total_models"`
	StandardOpenSourceCount int           `json:"standard_opensource_count"`
	StandardClosedCount     int           `json:"standard_closed_count"`
	NonStandardCount        int           `json:"non_standard_count"`
	PrimaryMetric           string        `json:"primary_metric"`
	Top                     []types.Entry `json:"top_5"`
}

// MixOverview summarizes the LIBERO-Plus leaderboard.
type MixOverview struct {
	TotalModels                   int           `json:"total_models"`
	StandardOpenSourceCount       int           `json:"standard_opensource_count"`
	StandardOpenSourceMixSFTCount int           `json:"standard_opensource_mixsft_count"`
	StandardClosedCount           int           `json:"standard_closed_count"`
	StandardClosedMixSFTCount     int           `json:"standard_closed_mixsft_count"`
	NonStandardCount              int           `json:"non_standard_count"`
	NonStandardMixSFTCount        int           `json:"non_standard_mixsft_count"`
	PrimaryMetric                 string        `json:"primary_metric"`
	Top                           []types.Entry `json:"top_5"`
}

// CalvinOverview summarizes the default CALVIN setting and counts the others.
type CalvinOverview struct {
	TotalModels             int            `json:"total_models"`
	StandardOpenSourceCount int            `json:"standard_opensource_count"`
	StandardClosedCount     int            `json:"standard_closed_count"`
	NonStandardCount        int            `json:"non_standard_count"`
	PrimaryMetric           string         `json:"primary_metric"`
	Description             string         `json:"description"`
	Top                     []types.Entry  `json:"top_5"`
	Settings                CalvinSettings `json:"settings"`
}

// CalvinSettings holds the number of entries per CALVIN setting.
type CalvinSettings struct {
	ABCDD int `json:"abcd_d"`
	ABCD  int `json:"abc_d"`
	DD    int `json:"d_d"`
}

// Summary is the content of data.json.
type Summary struct {
	Libero     Overview       `json:"libero"`
	LiberoPlus MixOverview    `json:"libero_plus"`
	MetaWorld  Overview       `json:"metaworld"`
	Calvin     CalvinOverview `json:"calvin"`
}

// Boards are the ranked leaderboards a summary is built from.
type Boards struct {
	Libero     *category.Board[*model.LiberoEntry]
	LiberoPlus *category.MixBoard[*model.LiberoPlusEntry]
	MetaWorld  *category.Board[*model.MetaWorldEntry]
	Calvin     [model.CalvinSettingCount]*category.Board[*model.CalvinEntry]
}

// Option applies a configuration option to the builder.
type Option func(*builder)

// WithTopN sets how many leaders each overview lists.
func WithTopN(n int) Option {
	return func(b *builder) {
		if n >= 0 {
			b.topN = n
		}
	}
}

type builder struct {
	topN int
}

// Build summarizes ranked boards.
func Build(in Boards, opts ...Option) Summary {
	b := &builder{topN: DefaultTopN}
	for _, opt := range opts {
		opt(b)
	}
	return Summary{
		Libero:     Plain(in.Libero, AverageSuccessRate, b.topN),
		LiberoPlus: Mixed(in.LiberoPlus, b.topN),
		MetaWorld:  Plain(in.MetaWorld, AverageSuccessRate, b.topN),
		Calvin:     Calvin(in.Calvin, b.topN),
	}
}

// Plain summarizes an ordinary board. The leaders are the head of its
// standard open-source list.
func Plain[E model.Ranked](b *category.Board[E], metric string, n int) Overview {
	return Overview{
		TotalModels:             b.Len(),
		StandardOpenSourceCount: len(b.StandardOpenSource),
		StandardClosedCount:     len(b.StandardClosed),
		NonStandardCount:        len(b.NonStandard),
		PrimaryMetric:           metric,
		Top:                     types.Top(b.StandardOpenSource, n),
	}
}

// Mixed summarizes the LIBERO-Plus board. The leaders are drawn from the
// open-source lists of both training recipes, re-ranked together.
func Mixed(b *category.MixBoard[*model.LiberoPlusEntry], n int) MixOverview {
	union := make([]*model.LiberoPlusEntry, 0, len(b.StandardOpenSource)+len(b.StandardOpenSourceMixSFT))
	union = append(union, b.StandardOpenSource...)
	union = append(union, b.StandardOpenSourceMixSFT...)
	return MixOverview{
		TotalModels:                   b.Len(),
		StandardOpenSourceCount:       len(b.StandardOpenSource),
		StandardOpenSourceMixSFTCount: len(b.StandardOpenSourceMixSFT),
		StandardClosedCount:           len(b.StandardClosed),
		StandardClosedMixSFTCount:     len(b.StandardClosedMixSFT),
		NonStandardCount:              len(b.NonStandard),
		NonStandardMixSFTCount:        len(b.NonStandardMixSFT),
		PrimaryMetric:                 TotalSuccessRate,
		Top:                           types.Top(ranking.Sorted(union), n),
	}
}

// Calvin summarizes the default setting.
func Calvin(boards [model.CalvinSettingCount]*category.Board[*model.CalvinEntry], n int) CalvinOverview {
	def := Plain(boards[CalvinDefault], AverageLength, n)
	return CalvinOverview{
		TotalModels:             def.TotalModels,
		StandardOpenSourceCount: def.StandardOpenSourceCount,
		StandardClosedCount:     def.StandardClosedCount,
		NonStandardCount:        def.NonStandardCount,
		PrimaryMetric:           def.PrimaryMetric,
		Description:             calvinDescription,
		Top:                     def.Top,
		Settings: CalvinSettings{
			ABCDD: boards[model.SettingABCDD].Len(),
			ABCD:  boards[model.SettingABCD].Len(),
			DD:    boards[model.SettingDD].Len(),
		},
	}
}
