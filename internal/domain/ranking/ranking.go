// Package ranking orders leaderboard entries by their primary metric.
package ranking

import (
	"sort"

	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
)

// Rank sorts entries in place, best first, and assigns ranks 1..N. Missing
// scores sort as zero and ties keep their input order.
func Rank[E model.Ranked](entries []E) {
	sortDesc(entries)
	for i, e := range entries {
		e.SetRank(i + 1)
	}
}

// Sorted returns a sorted copy of entries without touching their ranks.
// The rank an entry would have is its index plus one.
func Sorted[E model.Ranked](entries []E) []E {
	out := make([]E, len(entries))
	copy(out, entries)
	sortDesc(out)
	return out
}

// Board ranks every category of b independently.
func Board[E model.Ranked](b *category.Board[E]) {
	for _, c := range category.Plain {
		list, _ := b.List(c)
		Rank(list)
	}
}

// MixBoard ranks every category of b independently.
func MixBoard[E category.MixRanked](b *category.MixBoard[E]) {
	for _, c := range category.Mixed {
		list, _ := b.List(c)
		Rank(list)
	}
}

func sortDesc[E model.Ranked](entries []E) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PrimaryScore().OrZero() > entries[j].PrimaryScore().OrZero()
	})
}
