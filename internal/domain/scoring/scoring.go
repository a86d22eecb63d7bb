// Package scoring defines how aggregate benchmark scores are derived from
// their sub-metrics.
package scoring

import (
	"math"

	"github.com/okian/vlaboard/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultPlaces = 2
	liberoMin     = 3 // of spatial, object, goal, long
	metaWorldMin  = 2 // of easy, medium, hard, very_hard
	liberoPlusMin = 4 // of the seven perturbation dimensions
)

// Option applies a configuration option to a Rule.
type Option func(*Rule)

// WithPlaces sets the rounding precision of derived aggregates.
func WithPlaces(places int) Option {
	return func(r *Rule) {
		if places >= 0 {
			r.places = places
		}
	}
}

// Rule derives a missing aggregate as the mean of its sub-metrics once at
// least MinPresent of them are reported.
type Rule struct {
	minPresent int
	places     int
}

// NewRule creates a rule requiring minPresent sub-metrics.
func NewRule(minPresent int, opts ...Option) Rule {
	r := Rule{
		minPresent: minPresent,
		places:     defaultPlaces,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Per-benchmark rules.
var (
	Libero     = NewRule(liberoMin)
	MetaWorld  = NewRule(metaWorldMin)
	LiberoPlus = NewRule(liberoPlusMin)
)

// MinPresent returns the number of sub-metrics the rule needs.
func (r Rule) MinPresent() int { return r.minPresent }

// Fill returns aggregate when it is present. Otherwise it returns the rounded
// mean of the present sub-metrics if there are enough of them. derived is
// true only when a value was computed.
func (r Rule) Fill(aggregate model.Score, subs ...model.Score) (score model.Score, derived bool) {
	if aggregate.Valid() {
		return aggregate, false
	}
	mean, n := Mean(subs...)
	if n == 0 || n < r.minPresent {
		return model.Null(), false
	}
	return model.Some(Round(mean, r.places)), true
}

// Mean averages the present scores and reports how many there were.
func Mean(scores ...model.Score) (float64, int) {
	var (
		sum float64
		n   int
	)
	for _, s := range scores {
		if v, ok := s.Value(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
