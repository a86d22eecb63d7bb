// Package aggregate folds extracted rows into one record per model.
//
// Rows are applied in file order. LIBERO-Plus results are kept as
// independent entries; every other benchmark has a single slot per model
// that is filled according to the merge Policy.
package aggregate

import (
	"github.com/okian/vlaboard/internal/domain/extract"
	"github.com/okian/vlaboard/internal/domain/model"
)

// Stats counts what happened while folding rows.
type Stats struct {
	Rows       int `json:"rows"`        // rows seen, including skipped ones
	Skipped    int `json:"skipped"`     // rows without a model name
	References int `json:"references"`  // rows quoting another paper
	Models     int `json:"models"`      // distinct model identities
	LiberoPlus int `json:"libero_plus"` // LIBERO-Plus entries
	// Derived counts aggregates computed from sub-metrics, per benchmark.
	Derived map[model.Benchmark]int `json:"derived"`
}

// Aggregate is the result of folding a batch of rows.
type Aggregate struct {
	records    []*model.Record
	index      map[string]*model.Record
	liberoPlus []*model.LiberoPlusEntry
	stats      Stats
}

type engine struct {
	policy Policy
	agg    *Aggregate
	// originalMeta marks records whose metadata came from an original row.
	originalMeta map[string]bool
}

// Run folds rows in order and returns the aggregate. It never fails.
func Run(rows []extract.Extracted, opts ...Option) *Aggregate {
	e := &engine{
		policy: LastOriginalWins,
		agg: &Aggregate{
			index: make(map[string]*model.Record),
			stats: Stats{Derived: make(map[model.Benchmark]int)},
		},
		originalMeta: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	for i := range rows {
		e.apply(&rows[i])
	}
	e.agg.stats.Models = len(e.agg.records)
	e.agg.stats.LiberoPlus = len(e.agg.liberoPlus)
	return e.agg
}

func (e *engine) apply(row *extract.Extracted) {
	st := &e.agg.stats
	st.Rows++
	if row.Skip() {
		st.Skipped++
		return
	}
	if !row.Original {
		st.References++
	}
	for _, b := range row.Derived {
		st.Derived[b]++
	}

	if row.LiberoPlus.Scores.Present() {
		e.agg.liberoPlus = append(e.agg.liberoPlus, &model.LiberoPlusEntry{
			Meta:             row.Meta,
			LiberoPlusScores: row.LiberoPlus.Scores,
			Annotation: model.Annotation{
				Source:   row.LiberoPlusSource(),
				Standard: row.LiberoPlus.Standard,
				Note:     row.LiberoPlus.Note,
			},
			MixSFT: row.MixSFT,
		})
	}

	rec := e.record(row)
	e.mergeMeta(rec, row)

	source := row.Source()
	if row.Libero.Scores.Present() && e.writable(existingSource(rec.Libero), row.Original) {
		rec.Libero = withSource(row.Libero, source)
	}
	if row.MetaWorld.Scores.Present() && e.writable(existingSource(rec.MetaWorld), row.Original) {
		rec.MetaWorld = withSource(row.MetaWorld, source)
	}
	for i, scores := range row.Calvin {
		if !scores.Present() || !e.writable(existingSource(rec.Calvin[i]), row.Original) {
			continue
		}
		rec.Calvin[i] = &model.Block[model.CalvinScores]{Scores: scores, Source: source}
		mergeCalvinProtocol(rec, model.CalvinSetting(i), row.CalvinProtocol)
	}
}

// record returns the record for the row's model, creating it from the row's
// metadata on first sight.
func (e *engine) record(row *extract.Extracted) *model.Record {
	if rec, ok := e.agg.index[row.Name]; ok {
		return rec
	}
	rec := &model.Record{Meta: row.Meta}
	e.agg.index[row.Name] = rec
	e.agg.records = append(e.agg.records, rec)
	if row.Original {
		e.originalMeta[row.Name] = true
	}
	return rec
}

// mergeMeta refreshes metadata from an original row. Links and dates are only
// replaced by present values; the open-source flag is always taken.
func (e *engine) mergeMeta(rec *model.Record, row *extract.Extracted) {
	if !row.Original {
		return
	}
	if e.policy == FirstOriginalWins {
		if e.originalMeta[row.Name] {
			return
		}
		e.originalMeta[row.Name] = true
	}
	if row.Meta.PaperURL != nil {
		rec.PaperURL = row.Meta.PaperURL
	}
	if row.Meta.PubDate != nil {
		rec.PubDate = row.Meta.PubDate
	}
	rec.OpenSource = row.Meta.OpenSource
	if row.Meta.OpenSourceURL != nil {
		rec.OpenSourceURL = row.Meta.OpenSourceURL
	}
}

// writable reports whether a row may write a slot whose current source is
// existing ("" when the slot is empty).
func (e *engine) writable(existing string, original bool) bool {
	switch {
	case existing == "":
		return true
	case !original:
		return false
	case e.policy == FirstOriginalWins:
		return existing != model.SourceOriginal
	default:
		return true
	}
}

// mergeCalvinProtocol attaches the row's CALVIN standard flag and note. The
// ABCD-D setting always sets them; the other settings only fill them in.
func mergeCalvinProtocol(rec *model.Record, setting model.CalvinSetting, p model.Protocol) {
	if setting == model.SettingABCDD || rec.CalvinProtocol == nil {
		rec.CalvinProtocol = &p
	}
}

func existingSource[S model.Metrics](b *model.Block[S]) string {
	if b == nil {
		return ""
	}
	return b.Source
}

func withSource[S model.Metrics](b model.Block[S], source string) *model.Block[S] {
	b.Source = source
	return &b
}

// Records returns every model in first-seen order.
func (a *Aggregate) Records() []*model.Record { return a.records }

// Lookup returns the record of a model.
func (a *Aggregate) Lookup(name string) (*model.Record, bool) {
	rec, ok := a.index[name]
	return rec, ok
}

// LiberoPlus returns the LIBERO-Plus entries in file order.
func (a *Aggregate) LiberoPlus() []*model.LiberoPlusEntry { return a.liberoPlus }

// Stats returns the fold counters.
func (a *Aggregate) Stats() Stats { return a.stats }

// Libero returns one entry per model with a LIBERO block, in first-seen order.
func (a *Aggregate) Libero() []*model.LiberoEntry {
	out := make([]*model.LiberoEntry, 0, len(a.records))
	for _, rec := range a.records {
		if rec.Libero == nil {
			continue
		}
		out = append(out, &model.LiberoEntry{
			Meta:         rec.Meta,
			LiberoScores: rec.Libero.Scores,
			Annotation:   annotation(rec.Libero.Source, rec.Libero.Protocol),
		})
	}
	return out
}

// MetaWorld returns one entry per model with a Meta-World block.
func (a *Aggregate) MetaWorld() []*model.MetaWorldEntry {
	out := make([]*model.MetaWorldEntry, 0, len(a.records))
	for _, rec := range a.records {
		if rec.MetaWorld == nil {
			continue
		}
		out = append(out, &model.MetaWorldEntry{
			Meta:            rec.Meta,
			MetaWorldScores: rec.MetaWorld.Scores,
			Annotation:      annotation(rec.MetaWorld.Source, rec.MetaWorld.Protocol),
		})
	}
	return out
}

// Calvin returns one entry per model with a block for the given setting.
// The entries share the model's CALVIN protocol.
func (a *Aggregate) Calvin(setting model.CalvinSetting) []*model.CalvinEntry {
	out := make([]*model.CalvinEntry, 0, len(a.records))
	for _, rec := range a.records {
		b := rec.Calvin[setting]
		if b == nil {
			continue
		}
		var p model.Protocol
		if rec.CalvinProtocol != nil {
			p = *rec.CalvinProtocol
		}
		out = append(out, &model.CalvinEntry{
			Meta:         rec.Meta,
			CalvinScores: b.Scores,
			Annotation:   annotation(b.Source, p),
		})
	}
	return out
}

func annotation(source string, p model.Protocol) model.Annotation {
	return model.Annotation{Source: source, Standard: p.Standard, Note: p.Note}
}
