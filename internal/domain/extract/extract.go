// Package extract turns one spreadsheet row into typed benchmark blocks.
package extract

import (
	"strings"

	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/normalize"
	"github.com/okian/vlaboard/internal/domain/scoring"
)

// Extracted is everything the aggregation engine needs from one row.
type Extracted struct {
	Line int
	Name string

	// Original is false when the row quotes another paper's numbers.
	Original bool
	// DataSource is the raw reference text of a non-original row.
	DataSource string

	Meta model.Meta

	Libero     model.Block[model.LiberoScores]
	LiberoPlus model.Block[model.LiberoPlusScores]
	MixSFT     bool
	MetaWorld  model.Block[model.MetaWorldScores]

	Calvin         [model.CalvinSettingCount]model.CalvinScores
	CalvinProtocol model.Protocol

	// Derived lists the benchmarks whose aggregate was computed from sub-metrics.
	Derived []model.Benchmark
}

// Skip reports whether the row has no model name and must be ignored.
func (e *Extracted) Skip() bool { return e.Name == "" }

// Source returns the label blocks from this row carry.
func (e *Extracted) Source() string {
	if e.Original {
		return model.SourceOriginal
	}
	return e.DataSource
}

// LiberoPlusSource returns the label a LIBERO-Plus entry from this row carries.
func (e *Extracted) LiberoPlusSource() string {
	if e.Original {
		return model.SourceLiberoPlus
	}
	return e.DataSource
}

// Row extracts every benchmark block of r. It never fails: unreadable cells
// become null scores.
func Row(r model.Row) Extracted {
	e := Extracted{
		Line:     r.Line,
		Name:     strings.TrimSpace(r.Name),
		Original: !normalize.IsReference(r.PaperURL),
	}
	if !e.Original {
		e.DataSource = r.PaperURL
	}
	e.Meta = model.Meta{
		Name:          e.Name,
		PaperURL:      normalize.PaperURL(r.PaperURL),
		PubDate:       normalize.Date(r.PubDate),
		OpenSource:    normalize.IsOpenSource(r.OpenSource),
		OpenSourceURL: normalize.OpenSourceURL(r.OpenSource),
	}

	var derived bool
	e.Libero, derived = Libero(r.Libero)
	e.markDerived(model.Libero, derived)
	e.LiberoPlus, derived = LiberoPlus(r.LiberoPlus)
	e.markDerived(model.LiberoPlus, derived)
	e.MixSFT = normalize.IsMixSFT(r.LiberoPlus.MixSFT)
	e.MetaWorld, derived = MetaWorld(r.MetaWorld)
	e.markDerived(model.MetaWorld, derived)

	for i := range e.Calvin {
		e.Calvin[i] = CalvinSetting(r.Calvin.Settings[i])
	}
	e.CalvinProtocol = model.Protocol{
		Standard: normalize.IsStandardEval(r.Calvin.Standard),
		Note:     normalize.Note(r.Calvin.Note),
	}
	return e
}

func (e *Extracted) markDerived(b model.Benchmark, derived bool) {
	if derived {
		e.Derived = append(e.Derived, b)
	}
}

// Libero reads the LIBERO block. The average is derived from spatial,
// object, goal and long when it is missing.
func Libero(c model.LiberoCells) (model.Block[model.LiberoScores], bool) {
	s := model.LiberoScores{
		Spatial:  normalize.Number(c.Spatial),
		Object:   normalize.Number(c.Object),
		Goal:     normalize.Number(c.Goal),
		Long:     normalize.Number(c.Long),
		Libero90: normalize.Number(c.Libero90),
		Average:  normalize.Number(c.Average),
	}
	var derived bool
	s.Average, derived = scoring.Libero.Fill(s.Average, s.Spatial, s.Object, s.Goal, s.Long)
	return model.Block[model.LiberoScores]{
		Scores:   s,
		Protocol: protocol(c.Standard, c.Note),
	}, derived
}

// MetaWorld reads the Meta-World block.
func MetaWorld(c model.MetaWorldCells) (model.Block[model.MetaWorldScores], bool) {
	s := model.MetaWorldScores{
		Easy:     normalize.Number(c.Easy),
		Medium:   normalize.Number(c.Medium),
		Hard:     normalize.Number(c.Hard),
		VeryHard: normalize.Number(c.VeryHard),
		Average:  normalize.Number(c.Average),
	}
	var derived bool
	s.Average, derived = scoring.MetaWorld.Fill(s.Average, s.Easy, s.Medium, s.Hard, s.VeryHard)
	return model.Block[model.MetaWorldScores]{
		Scores:   s,
		Protocol: protocol(c.Standard, c.Note),
	}, derived
}

// LiberoPlus reads the LIBERO-Plus block. The total is derived from the
// seven perturbation dimensions when it is missing.
func LiberoPlus(c model.LiberoPlusCells) (model.Block[model.LiberoPlusScores], bool) {
	s := model.LiberoPlusScores{
		Camera:     normalize.Number(c.Camera),
		Robot:      normalize.Number(c.Robot),
		Language:   normalize.Number(c.Language),
		Light:      normalize.Number(c.Light),
		Background: normalize.Number(c.Background),
		Noise:      normalize.Number(c.Noise),
		Layout:     normalize.Number(c.Layout),
		Total:      normalize.Number(c.Total),
	}
	var derived bool
	s.Total, derived = scoring.LiberoPlus.Fill(s.Total,
		s.Camera, s.Robot, s.Language, s.Light, s.Background, s.Noise, s.Layout)
	return model.Block[model.LiberoPlusScores]{
		Scores:   s,
		Protocol: protocol(c.Standard, c.Note),
	}, derived
}

// CalvinSetting reads one CALVIN setting. avg_len is never derived.
func CalvinSetting(c model.CalvinSettingCells) model.CalvinScores {
	return model.CalvinScores{
		Inst1:  normalize.Number(c.Inst[0]),
		Inst2:  normalize.Number(c.Inst[1]),
		Inst3:  normalize.Number(c.Inst[2]),
		Inst4:  normalize.Number(c.Inst[3]),
		Inst5:  normalize.Number(c.Inst[4]),
		AvgLen: normalize.Number(c.AvgLen),
	}
}

func protocol(standard, note string) model.Protocol {
	return model.Protocol{
		Standard: normalize.IsStandardEval(standard),
		Note:     normalize.Note(note),
	}
}
