// Package clock implements the per-arena virtual-time clock and the
// process-wide global pause, per §4.3 of the recording/playback design.
package clock

import "sync"

// PauseReason tags why the process-wide clock source is halted.
type PauseReason uint8

const (
	// ReasonNone is the zero value used while not paused.
	ReasonNone PauseReason = iota
	// DialogOpen halts time while a dialog surface is open.
	DialogOpen
	// SystemMenu halts time while the system menu is open.
	SystemMenu
	// LoadingTransition halts time across a loading transition.
	LoadingTransition
)

func (r PauseReason) String() string {
	switch r {
	case DialogOpen:
		return "DialogOpen"
	case SystemMenu:
		return "SystemMenu"
	case LoadingTransition:
		return "LoadingTransition"
	default:
		return "None"
	}
}

// GlobalPause is the process-wide flag that halts virtual time for every
// arena clock and the recording countdown uniformly. It is distinct from an
// individual Arena's local pause, which affects only that arena.
type GlobalPause struct {
	mu     sync.Mutex
	active bool
	reason PauseReason
}

// Pause sets the flag with the given reason.
func (g *GlobalPause) Pause(reason PauseReason) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = true
	g.reason = reason
}

// Resume clears the flag.
func (g *GlobalPause) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = false
	g.reason = ReasonNone
}

// IsPaused reports whether virtual time is currently halted.
func (g *GlobalPause) IsPaused() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Reason reports the current pause reason, or ReasonNone if not paused.
func (g *GlobalPause) Reason() PauseReason {
	if g == nil {
		return ReasonNone
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reason
}
