package dispatch

import (
	"arenic/internal/arenaid"
	"arenic/internal/arenatime"
	"arenic/internal/timeline"
)

// Ghost is the per-character, per-arena playback cursor: it remembers the
// last clock value it observed so each tick can compute the range of events
// newly due since then. One Ghost exists per (entity, arena) pair that has
// a published timeline.
type Ghost struct {
	Entity  timeline.EntityID
	Arena   arenaid.ID
	started bool
	prev    arenatime.Stamp
}

// NewGhost returns a playback cursor for entity in arena, primed to treat
// its very first tick as the first tick of a cycle.
func NewGhost(entity timeline.EntityID, arena arenaid.ID) *Ghost {
	return &Ghost{Entity: entity, Arena: arena}
}

// Playback runs one tick of C5's playback half for this ghost: it computes
// the range of events newly due since the last observed clock value, in
// published-timeline order, and hands each to handlers by kind. published is
// the character's timeline for this ghost's arena; a nil published is a
// no-op (no timeline committed yet).
//
// The three range shapes mirror the spec's playback procedure exactly:
// the first tick of a cycle (or of this Ghost's lifetime) is inclusive on
// both ends so an event at timestamp 0 is never missed; a normal tick is
// exclusive-low so the previous tick's boundary event is not redelivered;
// a wrap tick unions the tail of the old cycle with the head of the new one.
func (g *Ghost) Playback(published *timeline.Published, now arenatime.Stamp, handlers EffectHandlers) error {
	if published == nil {
		return nil
	}

	var events []timeline.Event
	switch {
	case !g.started:
		evs, err := published.EventsFromThrough(arenatime.Zero, now)
		if err != nil {
			return err
		}
		events = evs
	case g.prev.Seconds() <= now.Seconds():
		evs, err := published.EventsAfterThrough(g.prev, now)
		if err != nil {
			return err
		}
		events = evs
	default:
		tail, err := published.EventsAfterThrough(g.prev, arenatime.Max)
		if err != nil {
			return err
		}
		head, err := published.EventsFromThrough(arenatime.Zero, now)
		if err != nil {
			return err
		}
		events = append(tail, head...)
	}

	for _, event := range events {
		g.dispatch(event, handlers)
	}

	g.started = true
	g.prev = now
	return nil
}

// dispatch is the closed switch on Kind the spec requires in place of
// dynamic dispatch in the playback hot path.
func (g *Ghost) dispatch(event timeline.Event, handlers EffectHandlers) {
	switch event.Kind {
	case timeline.Movement:
		handlers.ApplyMovement(g.Entity, g.Arena, event.Delta)
	case timeline.Ability:
		handlers.SpawnAbility(g.Entity, g.Arena, event.AbilityID, event.Target)
	case timeline.Death:
		handlers.HandleDeath(g.Entity, g.Arena)
	}
}

// Reset rewinds the ghost to the start of a cycle, e.g. when a published
// timeline is replaced by a new commit to the same arena slot.
func (g *Ghost) Reset() {
	g.started = false
	g.prev = arenatime.Zero
}
