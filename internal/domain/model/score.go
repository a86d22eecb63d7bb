// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Score is an optional metric value. The zero value is null.
type Score struct {
	value float64
	valid bool
}

// Some returns a present score.
func Some(v float64) Score { return Score{value: v, valid: true} }

// Null returns an absent score.
func Null() Score { return Score{} }

// Value returns the score and whether it is present.
func (s Score) Value() (float64, bool) { return s.value, s.valid }

// Valid reports whether the score is present.
func (s Score) Valid() bool { return s.valid }

// OrZero returns the score, or 0 when absent. Ranking uses this.
func (s Score) OrZero() float64 {
	if !s.valid {
		return 0
	}
	return s.value
}

// String renders the score for logs.
func (s Score) String() string {
	if !s.valid {
		return "null"
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// MarshalJSON encodes an absent score as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON accepts a number or null.
func (s *Score) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*s = Null()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	*s = Some(v)
	return nil
}

// CountPresent returns how many of the given scores are present.
func CountPresent(scores ...Score) int {
	n := 0
	for _, s := range scores {
		if s.valid {
			n++
		}
	}
	return n
}
