// Package arenatime implements the bounded timestamp value type shared by
// every timeline and clock in the recording/playback subsystem.
package arenatime

import (
	"fmt"
	"math"
)

// Stamp is a scalar time within a single 120 second arena cycle, always held
// in the closed interval [0, Max]. It is stored as float32 so it round-trips
// byte-for-byte through the persistence format in package persist.
type Stamp float32

const (
	// Zero is the start of a cycle.
	Zero Stamp = 0
	// Max is the length of one arena cycle in seconds.
	Max Stamp = 120
	// Quarter, Half and ThreeQuarter are the checkpoint boundaries exposed
	// by the arena clock.
	Quarter      Stamp = 30
	Half         Stamp = 60
	ThreeQuarter Stamp = 90
)

// New clamps seconds into [0, Max]. NaN is coerced to 0.
func New(seconds float32) Stamp {
	if seconds != seconds { // NaN
		return Zero
	}
	switch {
	case seconds < float32(Zero):
		return Zero
	case seconds > float32(Max):
		return Max
	default:
		return Stamp(seconds)
	}
}

// Wrapped maps seconds onto [0, Max) using Euclidean remainder. NaN is
// coerced to 0.
func Wrapped(seconds float32) Stamp {
	if seconds != seconds { // NaN
		return Zero
	}
	m := float64(Max)
	r := math.Mod(float64(seconds), m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r -= m
	}
	return Stamp(float32(r))
}

// Seconds returns the underlying scalar.
func (s Stamp) Seconds() float32 { return float32(s) }

// Less reports whether s occurs strictly before other. Callers must never
// construct a Stamp from NaN (the constructors forbid it), so comparisons
// are always well-ordered.
func (s Stamp) Less(other Stamp) bool { return s < other }

// Equal reports whether s and other hold the same scalar value.
func (s Stamp) Equal(other Stamp) bool { return s == other }

// Compare returns -1, 0 or 1 following the usual ordering convention.
func (s Stamp) Compare(other Stamp) int {
	switch {
	case s < other:
		return -1
	case s > other:
		return 1
	default:
		return 0
	}
}

func (s Stamp) String() string {
	return fmt.Sprintf("%.1fs", float32(s))
}
