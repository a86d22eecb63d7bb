// Package verify checks published leaderboards against their invariants.
package verify

import (
	"errors"
	"fmt"

	"github.com/okian/vlaboard/internal/domain/board"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
)

// Result checks every leaderboard of r and its summary. All violations are
// returned joined; nil means the result is consistent.
func Result(r *board.Result) error {
	var errs []error
	for _, b := range model.Benchmarks {
		s, _ := r.Board(b)
		if err := Board(b, s); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, summary(r)...)
	return errors.Join(errs...)
}

// Board checks one leaderboard: every entry sits in the category it
// belongs to, ranks run 1..N in score order, and outside LIBERO-Plus no
// model appears twice.
func Board(b model.Benchmark, s category.Sectioned) error {
	var errs []error
	seen := make(map[string]category.Category)
	for _, sec := range s.Sections() {
		for i, e := range sec.Entries {
			if got := categoryOf(e); got != sec.Category {
				errs = append(errs, fmt.Errorf("%s/%s: %q belongs in %s: %w", b, sec.Category, e.ModelName(), got, ErrMisplaced))
			}
			if e.Position() != i+1 {
				errs = append(errs, fmt.Errorf("%s/%s: %q has rank %d at position %d: %w", b, sec.Category, e.ModelName(), e.Position(), i+1, ErrRankGap))
			}
			if i > 0 && e.PrimaryScore().OrZero() > sec.Entries[i-1].PrimaryScore().OrZero() {
				errs = append(errs, fmt.Errorf("%s/%s: %q outranked by a lower score: %w", b, sec.Category, e.ModelName(), ErrOrder))
			}
			if b == model.LiberoPlus {
				continue
			}
			if prev, dup := seen[e.ModelName()]; dup {
				errs = append(errs, fmt.Errorf("%s: %q in %s and %s: %w", b, e.ModelName(), prev, sec.Category, ErrDuplicate))
			}
			seen[e.ModelName()] = sec.Category
		}
	}
	return errors.Join(errs...)
}

func categoryOf(e model.Ranked) category.Category {
	if m, ok := e.(category.MixRanked); ok {
		return category.OfMixed(m)
	}
	return category.Of(e)
}

func summary(r *board.Result) []error {
	var errs []error
	check := func(b model.Benchmark, got, want int) {
		if got != want {
			errs = append(errs, fmt.Errorf("%s: summary reports %d models, board has %d: %w", b, got, want, ErrSummary))
		}
	}
	s := r.Summary
	check(model.Libero, s.Libero.TotalModels, r.Libero.Len())
	check(model.LiberoPlus, s.LiberoPlus.TotalModels, r.LiberoPlus.Len())
	check(model.MetaWorld, s.MetaWorld.TotalModels, r.MetaWorld.Len())
	check(model.CalvinABCD, s.Calvin.TotalModels, r.Calvin.ABCD.Len())
	check(model.CalvinABCDD, s.Calvin.Settings.ABCDD, r.Calvin.ABCDD.Len())
	check(model.CalvinDD, s.Calvin.Settings.DD, r.Calvin.DD.Len())
	return errs
}
