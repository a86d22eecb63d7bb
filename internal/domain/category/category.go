// Package category partitions leaderboard entries by evaluation protocol,
// release status and, for LIBERO-Plus, training recipe.
package category

import (
	"fmt"

	"github.com/okian/vlaboard/internal/domain/model"
)

// Category names a partition of a leaderboard.
type Category string

// Categories. The mix-sft variants exist only on LIBERO-Plus.
const (
	StandardOpenSource       Category = "standard_opensource"
	StandardOpenSourceMixSFT Category = "standard_opensource_mixsft"
	StandardClosed           Category = "standard_closed"
	StandardClosedMixSFT     Category = "standard_closed_mixsft"
	NonStandard              Category = "non_standard"
	NonStandardMixSFT        Category = "non_standard_mixsft"
)

// Plain lists the categories of an ordinary leaderboard in output order.
var Plain = []Category{StandardOpenSource, StandardClosed, NonStandard}

// Mixed lists the LIBERO-Plus categories in output order.
var Mixed = []Category{
	StandardOpenSource, StandardOpenSourceMixSFT,
	StandardClosed, StandardClosedMixSFT,
	NonStandard, NonStandardMixSFT,
}

// Parse validates a category name.
func Parse(name string) (Category, error) {
	for _, c := range Mixed {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// MixRanked is a ranked entry that also records its training recipe.
type MixRanked interface {
	model.Ranked
	IsMixSFT() bool
}

// Of returns the category of an ordinary entry. A non-standard protocol
// takes precedence over release status.
func Of(e model.Ranked) Category {
	switch {
	case !e.IsStandard():
		return NonStandard
	case e.IsOpenSource():
		return StandardOpenSource
	default:
		return StandardClosed
	}
}

// OfMixed returns the category of a LIBERO-Plus entry.
func OfMixed(e MixRanked) Category {
	c := Of(e)
	if !e.IsMixSFT() {
		return c
	}
	switch c {
	case NonStandard:
		return NonStandardMixSFT
	case StandardOpenSource:
		return StandardOpenSourceMixSFT
	default:
		return StandardClosedMixSFT
	}
}

// Section is one category of a board with its entries in board order.
type Section struct {
	Category Category
	Entries  []model.Ranked
}

// Sectioned is implemented by every board.
type Sectioned interface {
	// Sections returns every category in output order, empty ones included.
	Sections() []Section
	// Entries returns the entries of one category.
	Entries(c Category) ([]model.Ranked, bool)
	// Len returns the number of entries across all categories.
	Len() int
}

// Board is an ordinary leaderboard split into three categories. Every list
// is non-nil so empty categories encode as [].
type Board[E model.Ranked] struct {
	StandardOpenSource []E `json:"standard_opensource"`
	StandardClosed     []E `json:"standard_closed"`
	NonStandard        []E `json:"non_standard"`
}

// Split partitions entries, keeping their relative order.
func Split[E model.Ranked](entries []E) *Board[E] {
	b := &Board[E]{
		StandardOpenSource: []E{},
		StandardClosed:     []E{},
		NonStandard:        []E{},
	}
	for _, e := range entries {
		switch Of(e) {
		case NonStandard:
			b.NonStandard = append(b.NonStandard, e)
		case StandardOpenSource:
			b.StandardOpenSource = append(b.StandardOpenSource, e)
		default:
			b.StandardClosed = append(b.StandardClosed, e)
		}
	}
	return b
}

// List returns the slice backing category c.
func (b *Board[E]) List(c Category) ([]E, bool) {
	switch c {
	case StandardOpenSource:
		return b.StandardOpenSource, true
	case StandardClosed:
		return b.StandardClosed, true
	case NonStandard:
		return b.NonStandard, true
	default:
		return nil, false
	}
}

// Sections implements Sectioned.
func (b *Board[E]) Sections() []Section { return sections(Plain, b.List) }

// Entries implements Sectioned.
func (b *Board[E]) Entries(c Category) ([]model.Ranked, bool) {
	list, ok := b.List(c)
	if !ok {
		return nil, false
	}
	return toRanked(list), true
}

// Len implements Sectioned.
func (b *Board[E]) Len() int {
	return len(b.StandardOpenSource) + len(b.StandardClosed) + len(b.NonStandard)
}

// MixBoard is the LIBERO-Plus leaderboard split into six categories.
type MixBoard[E MixRanked] struct {
	StandardOpenSource       []E `json:"standard_opensource"`
	StandardOpenSourceMixSFT []E `json:"standard_opensource_mixsft"`
	StandardClosed           []E `json:"standard_closed"`
	StandardClosedMixSFT     []E `json:"standard_closed_mixsft"`
	NonStandard              []E `json:"non_standard"`
	NonStandardMixSFT        []E `json:"non_standard_mixsft"`
}

// SplitMixed partitions LIBERO-Plus entries, keeping their relative order.
func SplitMixed[E MixRanked](entries []E) *MixBoard[E] {
	b := &MixBoard[E]{
		StandardOpenSource:       []E{},
		StandardOpenSourceMixSFT: []E{},
		StandardClosed:           []E{},
		StandardClosedMixSFT:     []E{},
		NonStandard:              []E{},
		NonStandardMixSFT:        []E{},
	}
	for _, e := range entries {
		list := b.list(OfMixed(e))
		*list = append(*list, e)
	}
	return b
}

func (b *MixBoard[E]) list(c Category) *[]E {
	switch c {
	case StandardOpenSource:
		return &b.StandardOpenSource
	case StandardOpenSourceMixSFT:
		return &b.StandardOpenSourceMixSFT
	case StandardClosed:
		return &b.StandardClosed
	case StandardClosedMixSFT:
		return &b.StandardClosedMixSFT
	case NonStandard:
		return &b.NonStandard
	case NonStandardMixSFT:
		return &b.NonStandardMixSFT
	default:
		return nil
	}
}

// List returns the slice backing category c.
func (b *MixBoard[E]) List(c Category) ([]E, bool) {
	list := b.list(c)
	if list == nil {
		return nil, false
	}
	return *list, true
}

// Sections implements Sectioned.
func (b *MixBoard[E]) Sections() []Section { return sections(Mixed, b.List) }

// Entries implements Sectioned.
func (b *MixBoard[E]) Entries(c Category) ([]model.Ranked, bool) {
	list, ok := b.List(c)
	if !ok {
		return nil, false
	}
	return toRanked(list), true
}

// Len implements Sectioned.
func (b *MixBoard[E]) Len() int {
	n := 0
	for _, c := range Mixed {
		n += len(*b.list(c))
	}
	return n
}

func sections[E model.Ranked](order []Category, list func(Category) ([]E, bool)) []Section {
	out := make([]Section, 0, len(order))
	for _, c := range order {
		entries, _ := list(c)
		out = append(out, Section{Category: c, Entries: toRanked(entries)})
	}
	return out
}

func toRanked[E model.Ranked](list []E) []model.Ranked {
	out := make([]model.Ranked, len(list))
	for i, e := range list {
		out[i] = e
	}
	return out
}
