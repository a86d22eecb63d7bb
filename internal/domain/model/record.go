package model

// Metrics is implemented by every per-benchmark score set.
type Metrics interface {
	// Present reports whether at least one metric is non-null.
	Present() bool
	// Primary returns the metric the benchmark is ranked by.
	Primary() Score
}

// LiberoScores are the LIBERO suite success rates.
type LiberoScores struct {
	Spatial  Score `json:"spatial"`
	Object   Score `json:"object"`
	Goal     Score `json:"goal"`
	Long     Score `json:"long"`
	Libero90 Score `json:"libero_90"`
	Average  Score `json:"average"`
}

// Present implements Metrics.
func (s LiberoScores) Present() bool {
	return CountPresent(s.Spatial, s.Object, s.Goal, s.Long, s.Libero90, s.Average) > 0
}

// Primary implements Metrics.
func (s LiberoScores) Primary() Score { return s.Average }

// MetaWorldScores are the Meta-World difficulty-tier success rates.
type MetaWorldScores struct {
	Easy     Score `json:"easy"`
	Medium   Score `json:"medium"`
	Hard     Score `json:"hard"`
	VeryHard Score `json:"very_hard"`
	Average  Score `json:"average"`
}

// Present implements Metrics.
func (s MetaWorldScores) Present() bool {
	return CountPresent(s.Easy, s.Medium, s.Hard, s.VeryHard, s.Average) > 0
}

// Primary implements Metrics.
func (s MetaWorldScores) Primary() Score { return s.Average }

// LiberoPlusScores are the LIBERO-Plus perturbation-dimension success rates.
type LiberoPlusScores struct {
	Camera     Score `json:"camera"`
	Robot      Score `json:"robot"`
	Language   Score `json:"language"`
	Light      Score `json:"light"`
	Background Score `json:"background"`
	Noise      Score `json:"noise"`
	Layout     Score `json:"layout"`
	Total      Score `json:"total"`
}

// Present implements Metrics.
func (s LiberoPlusScores) Present() bool {
	return CountPresent(s.Camera, s.Robot, s.Language, s.Light, s.Background, s.Noise, s.Layout, s.Total) > 0
}

// Primary implements Metrics.
func (s LiberoPlusScores) Primary() Score { return s.Total }

// CalvinScores are one CALVIN setting: chain success rates and average length.
type CalvinScores struct {
	Inst1  Score `json:"inst1"`
	Inst2  Score `json:"inst2"`
	Inst3  Score `json:"inst3"`
	Inst4  Score `json:"inst4"`
	Inst5  Score `json:"inst5"`
	AvgLen Score `json:"avg_len"`
}

// Present implements Metrics.
func (s CalvinScores) Present() bool {
	return CountPresent(s.Inst1, s.Inst2, s.Inst3, s.Inst4, s.Inst5, s.AvgLen) > 0
}

// Primary implements Metrics.
func (s CalvinScores) Primary() Score { return s.AvgLen }

// Protocol is what a row declares about how a benchmark was evaluated.
type Protocol struct {
	Standard bool
	Note     string
}

// Block is one benchmark result attached to a model.
type Block[S Metrics] struct {
	Scores S
	// Source is SourceOriginal or the raw "from <paper>" reference text.
	Source string
	Protocol
}

// Meta is the model metadata copied onto every published entry.
type Meta struct {
	Name          string  `json:"name"`
	PaperURL      *string `json:"paper_url"`
	PubDate       *string `json:"pub_date"`
	OpenSource    bool    `json:"is_opensource"`
	OpenSourceURL *string `json:"opensource_url"`
}

// ModelName returns the model identity.
func (m Meta) ModelName() string { return m.Name }

// IsOpenSource reports whether the model is released.
func (m Meta) IsOpenSource() bool { return m.OpenSource }

// Record is the canonical aggregate of every non-LIBERO-Plus row for one model.
type Record struct {
	Meta

	Libero    *Block[LiberoScores]
	MetaWorld *Block[MetaWorldScores]
	Calvin    [CalvinSettingCount]*Block[CalvinScores]

	// CalvinProtocol is shared by the three settings; nil until a setting is written.
	CalvinProtocol *Protocol
}
