package model

// Benchmark identifies one published leaderboard.
type Benchmark string

// Leaderboards produced by the pipeline. Each CALVIN setting is ranked on its own.
const (
	Libero      Benchmark = "libero"
	LiberoPlus  Benchmark = "libero_plus"
	MetaWorld   Benchmark = "metaworld"
	CalvinABCDD Benchmark = "calvin_abcd_d"
	CalvinABCD  Benchmark = "calvin_abc_d"
	CalvinDD    Benchmark = "calvin_d_d"
)

// Benchmarks lists every leaderboard in output order.
var Benchmarks = []Benchmark{Libero, LiberoPlus, MetaWorld, CalvinABCDD, CalvinABCD, CalvinDD}

// Valid reports whether b names a known leaderboard.
func (b Benchmark) Valid() bool {
	for _, known := range Benchmarks {
		if b == known {
			return true
		}
	}
	return false
}

// CalvinSetting indexes the three CALVIN train/test splits.
type CalvinSetting int

// CALVIN settings in column order.
const (
	SettingABCDD CalvinSetting = iota
	SettingABCD
	SettingDD
	CalvinSettingCount = 3
)

// String returns the display label of the setting.
func (s CalvinSetting) String() string {
	switch s {
	case SettingABCDD:
		return "ABCD-D"
	case SettingABCD:
		return "ABC-D"
	case SettingDD:
		return "D-D"
	default:
		return "unknown"
	}
}

// Key returns the JSON key of the setting inside calvin.json.
func (s CalvinSetting) Key() string {
	switch s {
	case SettingABCDD:
		return "abcd_d"
	case SettingABCD:
		return "abc_d"
	case SettingDD:
		return "d_d"
	default:
		return ""
	}
}

// Benchmark returns the leaderboard the setting is published as.
func (s CalvinSetting) Benchmark() Benchmark {
	switch s {
	case SettingABCDD:
		return CalvinABCDD
	case SettingABCD:
		return CalvinABCD
	default:
		return CalvinDD
	}
}

// Source labels attached to benchmark blocks.
const (
	// SourceOriginal marks a block reported first-hand by the model's own paper.
	SourceOriginal = "original"
	// SourceLiberoPlus is what LIBERO-Plus entries carry when the row is original.
	SourceLiberoPlus = "from Libero-plus"
)
