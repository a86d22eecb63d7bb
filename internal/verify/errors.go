package verify

import "errors"

// Invariant violations reported by Result and Board.
var (
	ErrMisplaced = errors.New("entry in wrong category")
	ErrRankGap   = errors.New("ranks are not contiguous")
	ErrOrder     = errors.New("entries are not sorted by primary metric")
	ErrDuplicate = errors.New("model listed more than once")
	ErrSummary   = errors.New("summary disagrees with leaderboard")
)
