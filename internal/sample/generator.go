// Package sample generates synthetic submission sheets for demos, load tests
// and fixtures.
package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/pkg/logger"
)

// Generator defaults.
const (
	defaultModels         = 50
	defaultReferenceEvery = 5
)

// Probabilities of a generated model reporting each benchmark.
const (
	pLibero     = 0.8
	pLiberoPlus = 0.35
	pMetaWorld  = 0.4
	pCalvin     = 0.3
	pOpenSource = 0.6
	pStandard   = 0.85
	pMixSFT     = 0.3
	pBlankAgg   = 0.25 // aggregate left for the pipeline to derive
)

// Generator produces spreadsheet rows with plausible benchmark results.
type Generator struct {
	models         int
	seed           uint64
	referenceEvery int
}

// New creates a generator with the given options.
func New(opts ...Option) *Generator {
	g := &Generator{
		models:         defaultModels,
		seed:           1,
		referenceEvery: defaultReferenceEvery,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rows generates one original row per model, reference rows as configured
// and a trailing blank row.
func (g *Generator) Rows(ctx context.Context) ([]model.Row, error) {
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	rows := make([]model.Row, 0, g.models+g.models/max(g.referenceEvery, 1)+1)

	for i := 0; i < g.models; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sample generation cancelled: %w", err)
		}
		rows = append(rows, g.original(rng, i))
		if g.referenceEvery > 0 && i > 0 && (i+1)%g.referenceEvery == 0 {
			rows = append(rows, g.reference(rng, i))
		}
	}
	rows = append(rows, model.Row{})

	logger.Get().Debug(ctx, "generated sample rows",
		logger.Int("models", g.models),
		logger.Int("rows", len(rows)))
	return rows, nil
}

// Name returns the model name used for index i.
func Name(i int) string {
	return fmt.Sprintf("VLA-%03d", i+1)
}

func (g *Generator) original(rng *rand.Rand, i int) model.Row {
	r := model.Row{
		Name:     Name(i),
		PaperURL: fmt.Sprintf("https://arxiv.org/abs/24%02d.%05d", 1+rng.IntN(12), rng.IntN(100000)),
		PubDate:  fmt.Sprintf("%d.%d", 23+rng.IntN(3), 1+rng.IntN(12)),
	}
	if chance(rng, pOpenSource) {
		r.OpenSource = "https://github.com/vla/" + Name(i)
	} else {
		r.OpenSource = "0"
	}
	if chance(rng, pLibero) {
		r.Libero = libero(rng)
	}
	if chance(rng, pLiberoPlus) {
		r.LiberoPlus = liberoPlus(rng)
	}
	if chance(rng, pMetaWorld) {
		r.MetaWorld = metaWorld(rng)
	}
	if chance(rng, pCalvin) {
		r.Calvin = calvin(rng)
	}
	return r
}

// reference quotes an earlier model's LIBERO result from model i's paper.
func (g *Generator) reference(rng *rand.Rand, i int) model.Row {
	return model.Row{
		Name:     Name(rng.IntN(i)),
		PaperURL: "from " + Name(i) + " paper",
		Libero:   model.LiberoCells{Standard: "1", Average: pct(rng, 40, 95)},
	}
}

func libero(rng *rand.Rand) model.LiberoCells {
	c := model.LiberoCells{
		Standard: flag(rng, pStandard),
		Spatial:  pct(rng, 50, 99),
		Object:   pct(rng, 50, 99),
		Goal:     pct(rng, 50, 99),
		Long:     pct(rng, 30, 95),
	}
	if !chance(rng, pBlankAgg) {
		c.Average = pct(rng, 50, 97)
	}
	return c
}

func liberoPlus(rng *rand.Rand) model.LiberoPlusCells {
	c := model.LiberoPlusCells{
		Standard:   flag(rng, pStandard),
		MixSFT:     flag(rng, pMixSFT),
		Camera:     pct(rng, 5, 90),
		Robot:      pct(rng, 5, 90),
		Language:   pct(rng, 30, 95),
		Light:      pct(rng, 30, 95),
		Background: pct(rng, 30, 95),
		Noise:      pct(rng, 10, 90),
		Layout:     pct(rng, 30, 90),
	}
	if !chance(rng, pBlankAgg) {
		c.Total = pct(rng, 20, 85)
	}
	return c
}

func metaWorld(rng *rand.Rand) model.MetaWorldCells {
	c := model.MetaWorldCells{
		Standard: flag(rng, pStandard),
		Easy:     pct(rng, 60, 95),
		Medium:   pct(rng, 40, 85),
		Hard:     pct(rng, 20, 75),
		VeryHard: pct(rng, 10, 70),
	}
	if !chance(rng, pBlankAgg) {
		c.Average = pct(rng, 30, 85)
	}
	return c
}

func calvin(rng *rand.Rand) model.CalvinCells {
	c := model.CalvinCells{Standard: flag(rng, pStandard)}
	set := &c.Settings[rng.IntN(model.CalvinSettingCount)]
	rate := 75 + rng.Float64()*24
	length := 0.0
	for k := range set.Inst {
		set.Inst[k] = strconv.FormatFloat(rate, 'f', 1, 64)
		length += rate / 100
		rate *= 0.75 + rng.Float64()*0.2
	}
	set.AvgLen = strconv.FormatFloat(length, 'f', 2, 64)
	return c
}

func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

func flag(rng *rand.Rand, p float64) string {
	if chance(rng, p) {
		return "1"
	}
	return "0"
}

func pct(rng *rand.Rand, lo, hi float64) string {
	return strconv.FormatFloat(lo+rng.Float64()*(hi-lo), 'f', 1, 64)
}
