package recording

import (
	"time"

	"arenic/internal/arenaid"
	"arenic/internal/telemetry"
	"arenic/internal/timeline"
)

// TimelineStore is the storage the machine commits published timelines
// into. It is implemented by the engine layer that owns every character's
// CharacterTimelines.
type TimelineStore interface {
	IsGhost(entity timeline.EntityID, arena arenaid.ID) bool
	Publish(entity timeline.EntityID, arena arenaid.ID, published *timeline.Published)
}

type pending struct {
	arena arenaid.ID
	draft *timeline.Draft
}

// Machine is the single-threaded, synchronous recording state machine.
// Commands are drained once per tick; state updates are visible before any
// output event is emitted, and outputs are emitted in command order.
type Machine struct {
	mode      Mode
	target    timeline.EntityID
	hasTarget bool
	arena     arenaid.ID
	draft     *timeline.Draft
	countdown *CountdownTimer

	// pendingDrafts holds drafts retained across a Stop that did not commit
	// or discard outright (UserInterrupted, TimeComplete): the draft survives
	// in Idle mode until a follow-up Commit or Clear resolves it. See
	// DESIGN.md for why the state table's "retained pending commit/clear"
	// cell is modelled this way instead of as a fifth mode.
	pendingDrafts map[timeline.EntityID]pending

	store  TimelineStore
	logger telemetry.Logger
}

// NewMachine constructs an idle machine backed by store.
func NewMachine(store TimelineStore, logger telemetry.Logger) *Machine {
	return &Machine{
		mode:          Idle,
		store:         store,
		logger:        logger,
		pendingDrafts: make(map[timeline.EntityID]pending),
	}
}

// Mode returns the current recording mode.
func (m *Machine) Mode() Mode { return m.mode }

// Target returns the entity currently being recorded, if any.
func (m *Machine) Target() (timeline.EntityID, bool) { return m.target, m.hasTarget }

// Draft returns the draft timeline attached to the current recording
// target, or nil when not recording (Idle, or a target with no active
// draft).
func (m *Machine) Draft() *timeline.Draft { return m.draft }

// Countdown returns the countdown resource, or nil outside Countdown mode.
func (m *Machine) Countdown() *CountdownTimer { return m.countdown }

func (m *Machine) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

func stopReasonToTransition(r StopReason) TransitionReason {
	switch r {
	case TimeComplete:
		return ReasonTimeComplete
	case ArenaTransition:
		return ReasonArenaTransition
	case CharacterSwitch:
		return ReasonCharacterSwitch
	default:
		return ReasonUserInterrupted
	}
}

// Apply processes a single command to completion, returning the state
// change events and retry-dialog requests it produced (in command order; in
// practice at most one of each per call). Rejected commands produce neither
// and are only logged.
func (m *Machine) Apply(cmd Command) ([]StateChanged, []RetryDialogRequest) {
	switch cmd.Type {
	case CmdStartRecording:
		return m.applyStart(cmd)
	case CmdStopRecording:
		return m.applyStop(cmd), nil
	case CmdPauseForDialog:
		return m.applyPause(), nil
	case CmdResumeFromDialog:
		return m.applyResume(), nil
	case CmdCommitRecording:
		return m.applyCommit(cmd), nil
	case CmdClearRecording:
		return m.applyClear(cmd), nil
	default:
		m.logf("recording: unknown command type %q", cmd.Type)
		return nil, nil
	}
}

func (m *Machine) applyStart(cmd Command) ([]StateChanged, []RetryDialogRequest) {
	if m.mode != Idle {
		m.logf("recording: cannot start recording from state %s", m.mode)
		return nil, nil
	}
	if m.store != nil && m.store.IsGhost(cmd.Entity, cmd.Arena) {
		m.logf("recording: %s is a ghost in %s, showing retry dialog", cmd.Entity, cmd.Arena)
		return nil, []RetryDialogRequest{{Entity: cmd.Entity, Arena: cmd.Arena}}
	}

	previous := m.mode
	m.mode = Countdown
	m.target = cmd.Entity
	m.hasTarget = true
	m.arena = cmd.Arena
	m.draft = timeline.NewDraft()
	m.countdown = NewCountdown(countdownDuration)

	return []StateChanged{{
		Previous: previous,
		Current:  m.mode,
		Reason:   ReasonStartRequest,
		Entity:   cmd.Entity,
	}}, nil
}

func (m *Machine) applyStop(cmd Command) []StateChanged {
	switch m.mode {
	case Countdown:
		previous := m.mode
		m.mode = Idle
		entity := m.target
		m.clearActive()
		return []StateChanged{{
			Previous: previous,
			Current:  m.mode,
			Reason:   stopReasonToTransition(cmd.StopReason),
			Entity:   entity,
		}}
	case Recording:
		previous := m.mode
		m.mode = Idle
		entity, arena, draft := m.target, m.arena, m.draft
		m.clearActive()

		if cmd.StopReason == ArenaTransition || cmd.StopReason == CharacterSwitch {
			// The recording context itself is ending; nothing survives to
			// be committed later.
			draft = nil
		}
		if draft != nil {
			m.pendingDrafts[entity] = pending{arena: arena, draft: draft}
		}

		return []StateChanged{{
			Previous: previous,
			Current:  m.mode,
			Reason:   stopReasonToTransition(cmd.StopReason),
			Entity:   entity,
		}}
	case DialogPaused:
		previous := m.mode
		m.mode = Idle
		entity := m.target
		m.clearActive()
		return []StateChanged{{
			Previous: previous,
			Current:  m.mode,
			Reason:   stopReasonToTransition(cmd.StopReason),
			Entity:   entity,
		}}
	default:
		m.logf("recording: cannot stop recording from state %s", m.mode)
		return nil
	}
}

func (m *Machine) applyPause() []StateChanged {
	if m.mode != Recording {
		m.logf("recording: cannot pause recording from state %s", m.mode)
		return nil
	}
	previous := m.mode
	m.mode = DialogPaused
	return []StateChanged{{
		Previous: previous,
		Current:  m.mode,
		Reason:   ReasonDialogOpened,
		Entity:   m.target,
	}}
}

func (m *Machine) applyResume() []StateChanged {
	if m.mode != DialogPaused {
		m.logf("recording: cannot resume recording from state %s", m.mode)
		return nil
	}
	previous := m.mode
	m.mode = Recording
	return []StateChanged{{
		Previous: previous,
		Current:  m.mode,
		Reason:   ReasonDialogClosed,
		Entity:   m.target,
	}}
}

func (m *Machine) applyCommit(cmd Command) []StateChanged {
	switch m.mode {
	case Recording, DialogPaused:
		previous := m.mode
		m.mode = Idle
		entity, arena, draft := m.target, m.arena, m.draft
		m.clearActive()
		m.publish(entity, arena, draft)
		return []StateChanged{{
			Previous: previous,
			Current:  m.mode,
			Reason:   ReasonUserInterrupted,
			Entity:   entity,
		}}
	case Idle:
		if p, ok := m.pendingDrafts[cmd.Entity]; ok {
			delete(m.pendingDrafts, cmd.Entity)
			m.publish(cmd.Entity, p.arena, p.draft)
			return nil
		}
		m.logf("recording: cannot commit recording from state %s with no pending draft for %s", m.mode, cmd.Entity)
		return nil
	default:
		m.logf("recording: cannot commit recording from state %s", m.mode)
		return nil
	}
}

func (m *Machine) applyClear(cmd Command) []StateChanged {
	switch m.mode {
	case Countdown, Recording, DialogPaused:
		previous := m.mode
		m.mode = Idle
		entity := m.target
		m.clearActive()
		return []StateChanged{{
			Previous: previous,
			Current:  m.mode,
			Reason:   ReasonUserInterrupted,
			Entity:   entity,
		}}
	case Idle:
		if _, ok := m.pendingDrafts[cmd.Entity]; ok {
			delete(m.pendingDrafts, cmd.Entity)
			return nil
		}
		m.logf("recording: cannot clear recording from state %s with no pending draft for %s", m.mode, cmd.Entity)
		return nil
	default:
		m.logf("recording: cannot clear recording from state %s", m.mode)
		return nil
	}
}

func (m *Machine) publish(entity timeline.EntityID, arena arenaid.ID, draft *timeline.Draft) {
	if draft == nil || m.store == nil {
		return
	}
	published := timeline.Publish(draft)
	m.store.Publish(entity, arena, published)
}

// clearActive resets the fields tracking the active recording target,
// without touching pendingDrafts.
func (m *Machine) clearActive() {
	m.target = ""
	m.hasTarget = false
	m.draft = nil
	m.countdown = nil
}

// Tick advances the countdown, if any, by delta. Callers must only invoke
// Tick when the owning arena's clock actually advanced this frame (i.e. not
// while globally or locally paused), so the countdown honors the same pause
// gating as every clock.
func (m *Machine) Tick(delta time.Duration) []StateChanged {
	if m.mode != Countdown || m.countdown == nil {
		return nil
	}
	if !m.countdown.Tick(delta) {
		return nil
	}
	previous := m.mode
	m.mode = Recording
	m.countdown = nil
	return []StateChanged{{
		Previous: previous,
		Current:  m.mode,
		Reason:   ReasonCountdownComplete,
		Entity:   m.target,
	}}
}

// AppendEvent inserts event into the active draft; it is a no-op outside
// Recording mode. Package dispatch calls this once per captured movement or
// ability intent; recursive capture from playback is structurally
// impossible since this only ever touches the machine's own recording
// target.
func (m *Machine) AppendEvent(event timeline.Event) error {
	if m.mode != Recording || m.draft == nil {
		return nil
	}
	return m.draft.Insert(event)
}

// Arena reports the arena the current recording target is bound to.
func (m *Machine) Arena() arenaid.ID { return m.arena }
