package repository

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrNotFound         = errors.New("model not found")
	ErrNotReady         = errors.New("no leaderboard published yet")
	ErrUnknownBenchmark = errors.New("unknown benchmark")
	ErrInvalidLimit     = errors.New("invalid leaderboard limit")
	ErrNilResult        = errors.New("nil build result")
)
