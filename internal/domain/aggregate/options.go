package aggregate

import (
	"fmt"
	"strings"
)

// Policy decides which of several original rows owns a benchmark slot.
type Policy int

// Merge policies. Reference rows never replace a filled slot under either.
const (
	// LastOriginalWins lets every original row overwrite the slot.
	LastOriginalWins Policy = iota
	// FirstOriginalWins keeps the first original block and the metadata of
	// the first original row.
	FirstOriginalWins
)

// Policy names as they appear in configuration.
const (
	LastOriginalWinsName  = "last_original_wins"
	FirstOriginalWinsName = "first_original_wins"
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case FirstOriginalWins:
		return FirstOriginalWinsName
	default:
		return LastOriginalWinsName
	}
}

// ParsePolicy parses a configuration name. Empty means the default.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LastOriginalWinsName:
		return LastOriginalWins, nil
	case FirstOriginalWinsName:
		return FirstOriginalWins, nil
	default:
		return LastOriginalWins, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Option applies a configuration option to the engine.
type Option func(*engine)

// WithPolicy sets the merge policy.
func WithPolicy(p Policy) Option {
	return func(e *engine) {
		e.policy = p
	}
}
