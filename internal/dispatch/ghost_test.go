package dispatch

import (
	"testing"

	"arenic/internal/ability"
	"arenic/internal/arenaid"
	"arenic/internal/arenatime"
	"arenic/internal/grid"
	"arenic/internal/timeline"
)

type recordedEffect struct {
	kind   timeline.Kind
	entity timeline.EntityID
	delta  grid.Vector
	id     ability.ID
}

type fakeHandlers struct {
	events []recordedEffect
}

func (h *fakeHandlers) ApplyMovement(entity timeline.EntityID, _ arenaid.ID, delta grid.Vector) {
	h.events = append(h.events, recordedEffect{kind: timeline.Movement, entity: entity, delta: delta})
}

func (h *fakeHandlers) SpawnAbility(entity timeline.EntityID, _ arenaid.ID, id ability.ID, _ timeline.Target) {
	h.events = append(h.events, recordedEffect{kind: timeline.Ability, entity: entity, id: id})
}

func (h *fakeHandlers) HandleDeath(entity timeline.EntityID, _ arenaid.ID) {
	h.events = append(h.events, recordedEffect{kind: timeline.Death, entity: entity})
}

func publishEvents(t *testing.T, events ...timeline.Event) *timeline.Published {
	t.Helper()
	d := timeline.NewDraft()
	for _, e := range events {
		if err := d.Insert(e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	return timeline.Publish(d)
}

func TestGhostPlaybackFirstTickIncludesZero(t *testing.T) {
	published := publishEvents(t, timeline.NewMovement(0, grid.Vector{X: 1}))
	g := NewGhost("e1", 0)
	h := &fakeHandlers{}

	if err := g.Playback(published, arenatime.New(0), h); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if len(h.events) != 1 {
		t.Fatalf("events = %v, want exactly the t=0 event dispatched on the first tick", h.events)
	}
}

func TestGhostPlaybackNormalTickIsExclusiveLow(t *testing.T) {
	published := publishEvents(t,
		timeline.NewMovement(10, grid.Vector{X: 1}),
		timeline.NewMovement(20, grid.Vector{X: 1}),
	)
	g := NewGhost("e1", 0)
	h := &fakeHandlers{}
	_ = g.Playback(published, arenatime.New(10), h)
	h.events = nil

	if err := g.Playback(published, arenatime.New(20), h); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if len(h.events) != 1 {
		t.Fatalf("events = %v, want the t=10 boundary not redelivered", h.events)
	}
}

func TestGhostPlaybackWrapUnionsTailAndHead(t *testing.T) {
	// Scenario S5: one event just before the wrap, one just after.
	published := publishEvents(t,
		timeline.NewMovement(119.9, grid.Vector{X: 1}),
		timeline.NewMovement(0.1, grid.Vector{Y: 1}),
	)
	g := NewGhost("e1", 0)
	h := &fakeHandlers{}
	// Observe up to 119.5 first so prev sits just before the tail event.
	_ = g.Playback(published, arenatime.New(119.5), h)
	h.events = nil

	if err := g.Playback(published, arenatime.New(0.2), h); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if len(h.events) != 2 {
		t.Fatalf("events = %v, want both the tail (119.9) and head (0.1) events, no duplicates or omissions", h.events)
	}
	if h.events[0].delta.X != 1 || h.events[1].delta.Y != 1 {
		t.Fatalf("events = %v, want tail event before head event", h.events)
	}
}

func TestGhostPlaybackNoPublishedTimelineIsNoop(t *testing.T) {
	g := NewGhost("e1", 0)
	h := &fakeHandlers{}
	if err := g.Playback(nil, arenatime.New(5), h); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if len(h.events) != 0 {
		t.Fatalf("events = %v, want no dispatch for an absent timeline", h.events)
	}
}

func TestGhostPlaybackDispatchesAbilityAndDeath(t *testing.T) {
	published := publishEvents(t,
		timeline.NewAbility(5, ability.HolyNova, timeline.NoneTarget),
		timeline.NewDeath(6),
	)
	g := NewGhost("e1", 0)
	h := &fakeHandlers{}
	if err := g.Playback(published, arenatime.New(6), h); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if len(h.events) != 2 || h.events[0].kind != timeline.Ability || h.events[0].id != ability.HolyNova || h.events[1].kind != timeline.Death {
		t.Fatalf("events = %v, want [Ability(HolyNova), Death]", h.events)
	}
}

func TestRegistryPlaybackOrdersByEntityID(t *testing.T) {
	// Scenario S6: simultaneous ghosts firing at the same timestamp replay
	// in stable entity-id order.
	pubA := publishEvents(t, timeline.NewMovement(1, grid.Vector{X: 1}))
	pubB := publishEvents(t, timeline.NewMovement(1, grid.Vector{Y: 1}))
	lookup := fakeLookup{
		"zorro": {0: pubA},
		"abel":  {0: pubB},
	}

	reg := NewRegistry()
	reg.Track("zorro", 0)
	reg.Track("abel", 0)

	h := &fakeHandlers{}
	if err := reg.PlaybackArena(0, arenatime.New(1), lookup, h, nil); err != nil {
		t.Fatalf("PlaybackArena: %v", err)
	}
	if len(h.events) != 2 || h.events[0].entity != "abel" || h.events[1].entity != "zorro" {
		t.Fatalf("events = %v, want abel before zorro (stable entity id order)", h.events)
	}
}

func TestRegistrySuppressesRecordingTarget(t *testing.T) {
	pub := publishEvents(t, timeline.NewMovement(1, grid.Vector{X: 1}))
	lookup := fakeLookup{"e1": {0: pub}}

	reg := NewRegistry()
	reg.Track("e1", 0)

	h := &fakeHandlers{}
	suppress := func(e timeline.EntityID) bool { return e == "e1" }
	if err := reg.PlaybackArena(0, arenatime.New(1), lookup, h, suppress); err != nil {
		t.Fatalf("PlaybackArena: %v", err)
	}
	if len(h.events) != 0 {
		t.Fatalf("events = %v, want the active recording target suppressed from playback", h.events)
	}
}

type fakeLookup map[timeline.EntityID]map[arenaid.ID]*timeline.Published

func (f fakeLookup) Get(entity timeline.EntityID, arena arenaid.ID) (*timeline.Published, bool) {
	byArena, ok := f[entity]
	if !ok {
		return nil, false
	}
	p, ok := byArena[arena]
	return p, ok
}
