package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/vlaboard/internal/domain/board"
	"github.com/okian/vlaboard/internal/domain/category"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/summary"
	"github.com/okian/vlaboard/pkg/metrics"
)

// Snapshot is an immutable, indexed view of one build.
type Snapshot struct {
	Info   Info
	Result *board.Result

	// entries holds every board flattened in section order.
	entries map[model.Benchmark][]Entry
	// byName maps a model name to its positions in entries.
	byName map[model.Benchmark]map[string][]int
}

// MemStore serves the last published build. Readers never block: a publish
// swaps the whole snapshot.
type MemStore struct {
	now      func() time.Time
	snapshot atomic.Pointer[Snapshot]
}

// NewMemStore constructs an empty store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish indexes r and makes it the served build.
func (s *MemStore) Publish(ctx context.Context, runID string, r *board.Result) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	if r == nil {
		return Info{}, ErrNilResult
	}
	snap := newSnapshot(r)
	snap.Info = Info{
		RunID:   runID,
		BuiltAt: s.now().UTC(),
		Stats:   r.Stats,
		Counts:  r.Counts(),
	}
	s.snapshot.Store(snap)
	return snap.Info, nil
}

func newSnapshot(r *board.Result) *Snapshot {
	snap := &Snapshot{
		Result:  r,
		entries: make(map[model.Benchmark][]Entry, len(model.Benchmarks)),
		byName:  make(map[model.Benchmark]map[string][]int, len(model.Benchmarks)),
	}
	for _, b := range model.Benchmarks {
		sectioned, _ := r.Board(b)
		list := make([]Entry, 0, sectioned.Len())
		index := make(map[string][]int)
		for _, sec := range sectioned.Sections() {
			for _, e := range sec.Entries {
				index[e.ModelName()] = append(index[e.ModelName()], len(list))
				list = append(list, Entry{
					Benchmark: b,
					Category:  sec.Category,
					Rank:      e.Position(),
					Name:      e.ModelName(),
					Score:     e.PrimaryScore(),
					Detail:    e,
				})
			}
		}
		snap.entries[b] = list
		snap.byName[b] = index
	}
	return snap
}

// Current returns the served snapshot or nil.
func (s *MemStore) Current() *Snapshot {
	return s.snapshot.Load()
}

func (s *MemStore) load(b model.Benchmark) (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		metrics.RecordErrorByComponent("repository", "not_ready")
		return nil, ErrNotReady
	}
	if !b.Valid() {
		metrics.RecordErrorByComponent("repository", "unknown_benchmark")
		return nil, fmt.Errorf("%w: %q", ErrUnknownBenchmark, b)
	}
	return snap, nil
}

// Leaderboard returns the entries of one benchmark in board order.
func (s *MemStore) Leaderboard(ctx context.Context, b model.Benchmark, c category.Category, limit int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if limit < 0 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	snap, err := s.load(b)
	if err != nil {
		return nil, err
	}

	all := snap.entries[b]
	out := make([]Entry, 0, len(all))
	if c == "" {
		out = append(out, all...)
	} else {
		sectioned, _ := snap.Result.Board(b)
		if _, ok := sectioned.Entries(c); !ok {
			metrics.RecordErrorByComponent("repository", "unknown_category")
			return nil, fmt.Errorf("%w: %q on %s", category.ErrUnknownCategory, c, b)
		}
		for _, e := range all {
			if e.Category == c {
				out = append(out, e)
			}
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Rank returns every entry of a model on one benchmark.
func (s *MemStore) Rank(ctx context.Context, b model.Benchmark, name string) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	snap, err := s.load(b)
	if err != nil {
		return nil, err
	}
	positions, ok := snap.byName[b][name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, fmt.Errorf("%w: %q on %s", ErrNotFound, name, b)
	}
	out := make([]Entry, 0, len(positions))
	for _, i := range positions {
		out = append(out, snap.entries[b][i])
	}
	return out, nil
}

// Summary returns the data.json content of the published build.
func (s *MemStore) Summary(ctx context.Context) (summary.Summary, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return summary.Summary{}, ErrNotReady
	}
	return snap.Result.Summary, nil
}

// Info describes the published build.
func (s *MemStore) Info(ctx context.Context) (Info, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return Info{}, ErrNotReady
	}
	return snap.Info, nil
}

// Count returns the number of models in the published build.
func (s *MemStore) Count(ctx context.Context) int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return snap.Info.Stats.Models
}
