package dispatch

import (
	"arenic/internal/arenatime"
	"arenic/internal/grid"
	"arenic/internal/timeline"
)

// MovementDelta sums ±1 on each axis for the W/A/S/D keys whose edge
// fired this tick. The zero vector means no movement intent this tick.
func MovementDelta(edges InputEdges) grid.Vector {
	var d grid.Vector
	if edges.JustPressed(KeyW) {
		d.Y++
	}
	if edges.JustPressed(KeyS) {
		d.Y--
	}
	if edges.JustPressed(KeyA) {
		d.X--
	}
	if edges.JustPressed(KeyD) {
		d.X++
	}
	return d
}

// CaptureMovement builds a Movement event from this tick's edge-triggered
// direction, or reports ok=false if no movement key fired.
func CaptureMovement(edges InputEdges, t arenatime.Stamp) (timeline.Event, bool) {
	delta := MovementDelta(edges)
	if delta == (grid.Vector{}) {
		return timeline.Event{}, false
	}
	return timeline.NewMovement(t, delta), true
}

// CaptureAbility scans the fixed key→ability table in order and returns the
// Ability event for the first key whose edge fired this tick, or ok=false
// if none did.
func CaptureAbility(edges InputEdges, t arenatime.Stamp) (timeline.Event, bool) {
	for _, entry := range abilityKeys {
		if edges.JustPressed(entry.key) {
			return timeline.NewAbility(t, entry.id, timeline.NoneTarget), true
		}
	}
	return timeline.Event{}, false
}

// Recorder is the narrow slice of recording.Machine that Capture needs: an
// append sink for the active draft. The recording package's Machine itself
// satisfies this; capture never imports package recording directly so the
// dependency only runs one way.
type Recorder interface {
	AppendEvent(event timeline.Event) error
}

// Capture runs one tick of C5's recording half: it reads movement and
// ability edges and appends at most one event of each kind to rec. Callers
// are responsible for only invoking Capture while RecordingMode == Recording
// and the global pause is not active; rec.AppendEvent is itself a no-op
// outside Recording mode, so a stray call is harmless but wasted.
func Capture(edges InputEdges, t arenatime.Stamp, rec Recorder) error {
	if event, ok := CaptureMovement(edges, t); ok {
		if err := rec.AppendEvent(event); err != nil {
			return err
		}
	}
	if event, ok := CaptureAbility(edges, t); ok {
		if err := rec.AppendEvent(event); err != nil {
			return err
		}
	}
	return nil
}
