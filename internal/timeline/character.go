package timeline

import (
	"sync"

	"arenic/internal/arenaid"
)

// CharacterTimelines is the per-character mapping from arena id to that
// character's published timeline in that arena. At most one timeline is
// held per arena; writing a slot replaces the prior value and is what marks
// the character a Ghost for that arena.
type CharacterTimelines struct {
	mu    sync.RWMutex
	slots map[arenaid.ID]*Published
}

// NewCharacterTimelines returns an empty mapping.
func NewCharacterTimelines() *CharacterTimelines {
	return &CharacterTimelines{slots: make(map[arenaid.ID]*Published)}
}

// Get returns the published timeline for arena, if any.
func (c *CharacterTimelines) Get(arena arenaid.ID) (*Published, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.slots[arena]
	return p, ok
}

// Set installs published as the timeline for arena, replacing any prior
// value. This is an atomic commit: readers observe either the old or the
// new timeline, never a partially installed one.
func (c *CharacterTimelines) Set(arena arenaid.ID, published *Published) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slots == nil {
		c.slots = make(map[arenaid.ID]*Published)
	}
	c.slots[arena] = published
}

// IsGhost reports whether a published timeline already exists for arena,
// i.e. whether recording this character in that arena requires the retry
// confirmation flow.
func (c *CharacterTimelines) IsGhost(arena arenaid.ID) bool {
	_, ok := c.Get(arena)
	return ok
}

// Clear discards the timeline stored for arena, if any.
func (c *CharacterTimelines) Clear(arena arenaid.ID) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, arena)
}
