// Package engine composes the five recording/playback components (C1-C5)
// into the single cooperative tick loop described by the concurrency and
// resource model: drain commands, run the FSM, advance clocks, capture,
// play back, and hand off to external effect handlers.
package engine

import (
	"context"
	"time"

	"arenic/internal/arenaid"
	"arenic/internal/clock"
	"arenic/internal/dispatch"
	"arenic/internal/recording"
	"arenic/internal/telemetry"
	"arenic/internal/timeline"
	"arenic/logging"
)

// Deps carries the shared infrastructure the engine needs, mirroring the
// simulation core's injected-dependency pattern: a logger for rejected
// commands and contract violations, and a telemetry publisher for
// structured events fanned out to configured sinks.
type Deps struct {
	Logger    telemetry.Logger
	Publisher logging.Publisher
}

// Engine owns the nine arena clocks, the single recording state machine,
// every character's published timelines, and the ghost registry driving
// playback.
type Engine struct {
	deps Deps

	arenas      [arenaid.Count]*clock.Arena
	globalPause *clock.GlobalPause
	machine     *recording.Machine
	timelines   *Timelines
	registry    *dispatch.Registry

	pending []recording.Command
}

// New constructs an Engine with nine freshly reset arena clocks and an idle
// recording machine.
func New(deps Deps) *Engine {
	if deps.Publisher == nil {
		deps.Publisher = logging.NopPublisher{}
	}
	registry := dispatch.NewRegistry()
	timelines := NewTimelines(registry)

	e := &Engine{
		deps:        deps,
		globalPause: &clock.GlobalPause{},
		timelines:   timelines,
		registry:    registry,
	}
	for i := range e.arenas {
		e.arenas[i] = clock.NewArena()
	}
	e.machine = recording.NewMachine(timelines, deps.Logger)
	return e
}

// Arena returns the clock for id, or nil if id is out of range.
func (e *Engine) Arena(id arenaid.ID) *clock.Arena {
	if !id.Valid() {
		return nil
	}
	return e.arenas[id]
}

// GlobalPause returns the shared global pause gate.
func (e *Engine) GlobalPause() *clock.GlobalPause { return e.globalPause }

// Machine returns the recording FSM.
func (e *Engine) Machine() *recording.Machine { return e.machine }

// Timelines returns the store backing both the FSM's commits and the
// dispatcher's reads.
func (e *Engine) Timelines() *Timelines { return e.timelines }

// Enqueue stages cmd for the next Step call. Commands are drained and
// applied once per frame, in the order enqueued.
func (e *Engine) Enqueue(cmd recording.Command) {
	e.pending = append(e.pending, cmd)
}

// FrameResult summarizes the observable outputs of one Step call, chiefly
// for tests and for surfaces (dialogs, UI) that react to transitions.
type FrameResult struct {
	Changes     []recording.StateChanged
	Retries     []recording.RetryDialogRequest
	Checkpoints map[arenaid.ID][]clock.CheckpointEvent
}

// Step runs exactly one logical frame: (1) drain queued commands into the
// FSM; (2) advance virtual time on every arena clock, gated by global and
// local pause; (3) run capture for the active recording target, if its
// arena's clock advanced this tick; (4) run playback for every ghost in
// every arena; (5) hand decoded events to handlers. Capture and playback
// both receive the post-tick clock value of their arena, per the ordering
// guarantee in the concurrency model.
func (e *Engine) Step(ctx context.Context, delta time.Duration, edges dispatch.InputEdges, handlers dispatch.EffectHandlers) (FrameResult, error) {
	result := FrameResult{Checkpoints: make(map[arenaid.ID][]clock.CheckpointEvent)}

	cmds := e.pending
	e.pending = nil
	for _, cmd := range cmds {
		changes, retries := e.machine.Apply(cmd)
		result.Changes = append(result.Changes, changes...)
		result.Retries = append(result.Retries, retries...)
		e.logTransitions(ctx, changes)
		for _, c := range changes {
			if c.Current == recording.Countdown {
				// Entering Countdown resets the target's arena clock so the
				// countdown and subsequent capture timestamps start from 0,
				// per the recording contract, regardless of what the clock
				// was already showing (e.g. mid-cycle ghosts sharing the
				// same arena).
				e.arenas[e.machine.Arena()].Reset()
			}
		}
	}

	target, hasTarget := e.machine.Target()
	targetArena := e.machine.Arena()

	for id, a := range e.arenas {
		arena := arenaid.ID(id)
		crossed := a.Tick(delta, e.globalPause)
		if len(crossed) > 0 {
			result.Checkpoints[arena] = crossed
		}
		advanced := !a.IsLocallyPaused() && !e.globalPause.IsPaused()
		if !advanced {
			continue
		}

		if hasTarget && arena == targetArena {
			if changes := e.machine.Tick(delta); len(changes) > 0 {
				result.Changes = append(result.Changes, changes...)
				e.logTransitions(ctx, changes)
			}
			if e.machine.Mode() == recording.Recording && wrapped(crossed) {
				// The clock's own wrap detector raises TimeComplete
				// regardless of input; route it through the FSM like any
				// other StopRecording so the draft-retention rules in
				// applyStop still apply.
				stateChanges, _ := e.machine.Apply(recording.Command{
					Type:       recording.CmdStopRecording,
					Entity:     target,
					StopReason: recording.TimeComplete,
				})
				result.Changes = append(result.Changes, stateChanges...)
				e.logTransitions(ctx, stateChanges)
			}
			if e.machine.Mode() == recording.Recording {
				now := a.Elapsed()
				if err := dispatch.Capture(edges, now, e.machine); err != nil {
					return result, err
				}
			}
		}

		now := a.Elapsed()
		suppressInArena := hasTarget && arena == targetArena
		suppress := func(entity timeline.EntityID) bool { return suppressInArena && entity == target }
		if err := e.registry.PlaybackArena(arena, now, e.timelines, handlers, suppress); err != nil {
			return result, err
		}
	}

	return result, nil
}

func wrapped(crossed []clock.CheckpointEvent) bool {
	for _, c := range crossed {
		if c.Type == clock.CheckpointFullCycle {
			return true
		}
	}
	return false
}

func (e *Engine) logTransitions(ctx context.Context, changes []recording.StateChanged) {
	if e.deps.Publisher == nil {
		return
	}
	for _, c := range changes {
		e.deps.Publisher.Publish(ctx, logging.Event{
			Type:     "recording.transition",
			Time:     time.Now(),
			Actor:    logging.EntityRef{ID: string(c.Entity)},
			Severity: logging.SeverityInfo,
			Category: logging.CategoryRecording,
			Payload:  c,
		})
	}
}
