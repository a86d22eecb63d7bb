package model

// Ranked is a published leaderboard entry.
type Ranked interface {
	ModelName() string
	IsOpenSource() bool
	IsStandard() bool
	PrimaryScore() Score
	Position() int
	SetRank(rank int)
}

// Annotation carries the provenance and protocol of a published entry.
type Annotation struct {
	Source   string `json:"source"`
	Standard bool   `json:"is_standard"`
	Note     string `json:"note"`
}

// IsStandard reports whether the entry follows the benchmark's canonical protocol.
func (a Annotation) IsStandard() bool { return a.Standard }

// Placement is the 1-based rank of an entry inside its category.
type Placement struct {
	Rank int `json:"rank"`
}

// Position returns the rank.
func (p Placement) Position() int { return p.Rank }

// SetRank stores the rank.
func (p *Placement) SetRank(rank int) { p.Rank = rank }

// LiberoEntry is one row of libero.json.
type LiberoEntry struct {
	Meta
	LiberoScores
	Annotation
	Placement
}

// PrimaryScore implements Ranked.
func (e *LiberoEntry) PrimaryScore() Score { return e.Average }

// MetaWorldEntry is one row of metaworld.json.
type MetaWorldEntry struct {
	Meta
	MetaWorldScores
	Annotation
	Placement
}

// PrimaryScore implements Ranked.
func (e *MetaWorldEntry) PrimaryScore() Score { return e.Average }

// CalvinEntry is one row of one calvin.json setting.
type CalvinEntry struct {
	Meta
	CalvinScores
	Annotation
	Placement
}

// PrimaryScore implements Ranked.
func (e *CalvinEntry) PrimaryScore() Score { return e.AvgLen }

// LiberoPlusEntry is one LIBERO-Plus submission. Entries are never merged:
// two rows for the same model give two entries.
type LiberoPlusEntry struct {
	Meta
	LiberoPlusScores
	Annotation
	MixSFT bool `json:"is_mixsft"`
	Placement
}

// PrimaryScore implements Ranked.
func (e *LiberoPlusEntry) PrimaryScore() Score { return e.Total }

// IsMixSFT reports whether the submission used the mixed SFT recipe.
func (e *LiberoPlusEntry) IsMixSFT() bool { return e.MixSFT }
