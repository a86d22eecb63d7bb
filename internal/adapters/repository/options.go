// Package repository holds the most recently built leaderboards for serving.
package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock sets the time source used to stamp published builds.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}
