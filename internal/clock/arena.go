package clock

import (
	"time"

	"arenic/internal/arenatime"
)

// Checkpoint identifies a clock crossing observable by the dispatcher and by
// cosmetic subsystems. Checkpoints are never stored in a timeline.
type Checkpoint uint8

const (
	// CheckpointQuarter is crossing 30s.
	CheckpointQuarter Checkpoint = iota
	// CheckpointHalf is crossing 60s.
	CheckpointHalf
	// CheckpointThreeQuarter is crossing 90s.
	CheckpointThreeQuarter
	// CheckpointFullCycle is crossing 120s, which wraps the clock to 0.
	CheckpointFullCycle
)

func (c Checkpoint) String() string {
	switch c {
	case CheckpointQuarter:
		return "QuarterTime"
	case CheckpointHalf:
		return "HalfTime"
	case CheckpointThreeQuarter:
		return "ThreeQuarter"
	case CheckpointFullCycle:
		return "FullCycle"
	default:
		return "Unknown"
	}
}

// CheckpointEvent reports a single checkpoint crossing.
type CheckpointEvent struct {
	Timestamp arenatime.Stamp
	Type      Checkpoint
}

var checkpointThresholds = []struct {
	at   float32
	kind Checkpoint
}{
	{30, CheckpointQuarter},
	{60, CheckpointHalf},
	{90, CheckpointThreeQuarter},
	{120, CheckpointFullCycle},
}

// Arena is the per-arena virtual-time clock: a 120 second repeating timer
// with its own local pause flag, independent of GlobalPause.
type Arena struct {
	elapsed    float32
	localPause bool
}

// NewArena returns a fresh clock at elapsed=0, not locally paused.
func NewArena() *Arena {
	return &Arena{}
}

// Elapsed returns the current position within the cycle.
func (a *Arena) Elapsed() arenatime.Stamp {
	if a == nil {
		return arenatime.Zero
	}
	return arenatime.New(a.elapsed)
}

// Pause sets the local pause flag; it does not affect other arenas.
func (a *Arena) Pause() {
	if a == nil {
		return
	}
	a.localPause = true
}

// Resume clears the local pause flag.
func (a *Arena) Resume() {
	if a == nil {
		return
	}
	a.localPause = false
}

// IsLocallyPaused reports the local pause flag.
func (a *Arena) IsLocallyPaused() bool {
	if a == nil {
		return false
	}
	return a.localPause
}

// Reset zeroes elapsed time without touching the local pause flag.
func (a *Arena) Reset() {
	if a == nil {
		return
	}
	a.elapsed = 0
}

// Tick advances the clock by delta unless halted by local or global pause,
// and returns every checkpoint boundary crossed during the advance (in
// crossing order; normally zero or one, but a very large delta can cross
// several, including wrapping more than once).
func (a *Arena) Tick(delta time.Duration, global *GlobalPause) []CheckpointEvent {
	if a == nil {
		return nil
	}
	if a.localPause || global.IsPaused() {
		return nil
	}
	remaining := float32(delta.Seconds())
	var crossed []CheckpointEvent
	for remaining > 0 {
		distToWrap := float32(arenatime.Max) - a.elapsed
		step := remaining
		wraps := false
		if step >= distToWrap {
			step = distToWrap
			wraps = true
		}
		prev := a.elapsed
		a.elapsed += step
		remaining -= step

		for _, th := range checkpointThresholds {
			if th.kind == CheckpointFullCycle {
				continue
			}
			if prev < th.at && a.elapsed >= th.at {
				crossed = append(crossed, CheckpointEvent{
					Timestamp: arenatime.New(th.at),
					Type:      th.kind,
				})
			}
		}

		if wraps {
			crossed = append(crossed, CheckpointEvent{Timestamp: arenatime.Zero, Type: CheckpointFullCycle})
			a.elapsed = 0
		}
	}
	return crossed
}
