package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"arenic/internal/ability"
	"arenic/internal/arenaid"
	"arenic/internal/engine"
	"arenic/internal/grid"
	"arenic/internal/timeline"
)

// view owns the terminal screen and the last-known position of every
// entity it has been told about, purely for rendering; it holds no
// simulation state of its own.
type view struct {
	screen tcell.Screen

	mu        sync.Mutex
	positions map[timeline.EntityID]grid.Vector
	flashes   map[timeline.EntityID]rune
}

func (v *view) setPosition(entity timeline.EntityID, pos grid.Vector) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.positions == nil {
		v.positions = make(map[timeline.EntityID]grid.Vector)
	}
	v.positions[entity] = pos
}

func (v *view) flash(entity timeline.EntityID, r rune) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.flashes == nil {
		v.flashes = make(map[timeline.EntityID]rune)
	}
	v.flashes[entity] = r
}

func (v *view) draw(eng *engine.Engine, result engine.FrameResult) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()
	w, h := v.screen.Size()
	originX, originY := w/2, h/2

	style := tcell.StyleDefault
	for entity, pos := range v.positions {
		r := '*'
		if entity == playerEntity {
			r = '@'
			style = style.Foreground(tcell.ColorGreen)
		} else {
			style = style.Foreground(tcell.ColorAqua)
		}
		if flashRune, ok := v.flashes[entity]; ok {
			r = flashRune
			style = style.Foreground(tcell.ColorYellow)
		}
		x, y := originX+int(pos.X), originY+int(pos.Y)
		if x >= 0 && x < w && y >= 0 && y < h {
			v.screen.SetContent(x, y, r, nil, style)
		}
	}
	v.flashes = nil

	status := fmt.Sprintf("mode=%s arena=%s", eng.Machine().Mode(), eng.Machine().Arena())
	if n, ok := eng.Machine().Countdown().Display(); ok {
		status += fmt.Sprintf(" countdown=%d", n)
	}
	for i, r := range status {
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	if len(result.Retries) > 0 {
		msg := "recording target is a ghost in this arena -- recording not started"
		for i, r := range msg {
			v.screen.SetContent(i, 1, r, nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
		}
	}

	v.screen.Show()
}

// renderHandlers implements dispatch.EffectHandlers by pushing the
// resulting position/flash into the shared view and, for abilities,
// playing a short tone.
type renderHandlers struct {
	view       *view
	audioReady bool
}

func (h *renderHandlers) ApplyMovement(entity timeline.EntityID, _ arenaid.ID, delta grid.Vector) {
	h.view.mu.Lock()
	cur := h.view.positions[entity]
	h.view.mu.Unlock()

	next := grid.Vector{X: cur.X + delta.X, Y: cur.Y + delta.Y}
	h.view.setPosition(entity, next)
}

func (h *renderHandlers) SpawnAbility(entity timeline.EntityID, _ arenaid.ID, id ability.ID, _ timeline.Target) {
	h.view.flash(entity, abilityRune(id))
	if h.audioReady {
		playAbilityTone()
	}
}

func (h *renderHandlers) HandleDeath(entity timeline.EntityID, _ arenaid.ID) {
	h.view.flash(entity, 'x')
}

func abilityRune(id ability.ID) rune {
	switch id {
	case ability.AutoShot:
		return '1'
	case ability.HolyNova:
		return '2'
	case ability.PoisonShot:
		return '3'
	case ability.Heal:
		return '4'
	default:
		return '?'
	}
}
