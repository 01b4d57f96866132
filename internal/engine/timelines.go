package engine

import (
	"sync"

	"arenic/internal/arenaid"
	"arenic/internal/dispatch"
	"arenic/internal/timeline"
)

// Timelines owns every character's per-arena published timelines and is the
// single implementation shared between recording.TimelineStore (the FSM's
// commit target) and dispatch.TimelineLookup (the playback dispatcher's
// read path). Routing both through one store is what keeps invariant 4 (at
// most one PublishedTimeline per (character, arena)) enforceable in one
// place.
type Timelines struct {
	mu         sync.RWMutex
	characters map[timeline.EntityID]*timeline.CharacterTimelines
	registry   *dispatch.Registry
}

// NewTimelines returns an empty store backed by registry, which it keeps in
// sync on every publish.
func NewTimelines(registry *dispatch.Registry) *Timelines {
	return &Timelines{
		characters: make(map[timeline.EntityID]*timeline.CharacterTimelines),
		registry:   registry,
	}
}

func (t *Timelines) slot(entity timeline.EntityID) *timeline.CharacterTimelines {
	t.mu.RLock()
	c, ok := t.characters[entity]
	t.mu.RUnlock()
	if ok {
		return c
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.characters[entity]; ok {
		return c
	}
	c = timeline.NewCharacterTimelines()
	t.characters[entity] = c
	return c
}

// IsGhost satisfies recording.TimelineStore.
func (t *Timelines) IsGhost(entity timeline.EntityID, arena arenaid.ID) bool {
	t.mu.RLock()
	c, ok := t.characters[entity]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	return c.IsGhost(arena)
}

// Publish satisfies recording.TimelineStore: it installs published into the
// character's arena slot and registers (or re-registers, restarting
// playback from the top) the ghost cursor in the registry.
func (t *Timelines) Publish(entity timeline.EntityID, arena arenaid.ID, published *timeline.Published) {
	t.slot(entity).Set(arena, published)
	if t.registry != nil {
		t.registry.Track(entity, arena)
	}
}

// Get satisfies dispatch.TimelineLookup.
func (t *Timelines) Get(entity timeline.EntityID, arena arenaid.ID) (*timeline.Published, bool) {
	t.mu.RLock()
	c, ok := t.characters[entity]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return c.Get(arena)
}

// Clear discards entity's published timeline for arena and untracks its
// ghost cursor, e.g. when a character is deleted from play.
func (t *Timelines) Clear(entity timeline.EntityID, arena arenaid.ID) {
	t.slot(entity).Clear(arena)
	if t.registry != nil {
		t.registry.Untrack(entity, arena)
	}
}
