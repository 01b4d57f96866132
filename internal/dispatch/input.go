// Package dispatch implements C5: translating input edges into timeline
// events while recording, and replaying a ghost's published timeline during
// playback.
package dispatch

import "arenic/internal/ability"

// Key names the physical keys capture reads edge-triggered state for. It
// mirrors the fixed key set the original capture systems bind, independent
// of whatever windowing/input library the composition root wires in.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyR
	KeyTab
	KeyBracketLeft
	KeyBracketRight
	KeyC
	KeyAccept
)

// InputEdges reports whether a key's edge (just-pressed, not held) fired
// during the current tick. Capture only ever reads edges, never held state,
// so a key held across many ticks produces at most one event per press.
type InputEdges interface {
	JustPressed(k Key) bool
}

// abilityKeys is the fixed ordered key→ability table capture consults. The
// first entry whose key edge fired this tick wins; at most one ability
// event is captured per tick.
var abilityKeys = [...]struct {
	key Key
	id  ability.ID
}{
	{KeyDigit1, ability.AutoShot},
	{KeyDigit2, ability.HolyNova},
	{KeyDigit3, ability.PoisonShot},
	{KeyDigit4, ability.Heal},
}
