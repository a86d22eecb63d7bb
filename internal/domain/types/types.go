// Package types contains common types used across the application
package types

import "github.com/okian/vlaboard/internal/domain/model"

// Entry is the compact view of a leaderboard entry used in summaries.
type Entry struct {
	Name  string      `json:"name"`
	Score model.Score `json:"score"`
	Rank  int         `json:"rank"`
}

// FromRanked builds an entry with an explicit rank.
func FromRanked(e model.Ranked, rank int) Entry {
	return Entry{
		Name:  e.ModelName(),
		Score: e.PrimaryScore(),
		Rank:  rank,
	}
}

// Top returns the first n entries, ranked by position in the list. A
// non-positive n yields an empty slice.
func Top[E model.Ranked](entries []E, n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, FromRanked(entries[i], i+1))
	}
	return out
}
