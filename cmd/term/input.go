package main

import (
	"github.com/gdamore/tcell/v2"

	"arenic/internal/dispatch"
	"arenic/internal/engine"
	"arenic/internal/recording"
)

// keyEdges tracks which dispatch.Key values were pressed since the last
// clear, satisfying dispatch.InputEdges for exactly one tick's worth of
// capture before the loop resets it.
type keyEdges map[dispatch.Key]bool

func newKeyEdges() keyEdges { return make(keyEdges) }

func (k keyEdges) JustPressed(key dispatch.Key) bool { return k[key] }

func (k keyEdges) clear() {
	for key := range k {
		delete(k, key)
	}
}

var runeEdges = map[rune]dispatch.Key{
	'w': dispatch.KeyW,
	'a': dispatch.KeyA,
	's': dispatch.KeyS,
	'd': dispatch.KeyD,
	'1': dispatch.KeyDigit1,
	'2': dispatch.KeyDigit2,
	'3': dispatch.KeyDigit3,
	'4': dispatch.KeyDigit4,
	'r': dispatch.KeyR,
	'c': dispatch.KeyC,
	'[': dispatch.KeyBracketLeft,
	']': dispatch.KeyBracketRight,
}

// record translates one terminal key event into edge state and, for the
// control keys the dispatcher's external contract names (R, C, Tab,
// brackets), into recording.Commands enqueued on eng. It returns true if
// the event requests the program to quit.
func (k keyEdges) record(ev *tcell.EventKey, eng *engine.Engine) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}

	switch ev.Key() {
	case tcell.KeyTab:
		k[dispatch.KeyTab] = true
		eng.Enqueue(recording.Command{Type: recording.CmdStopRecording, Entity: playerEntity, StopReason: recording.CharacterSwitch})
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}
	key, ok := runeEdges[ev.Rune()]
	if !ok {
		return false
	}
	k[key] = true

	switch key {
	case dispatch.KeyR:
		toggleRecording(eng)
	case dispatch.KeyC:
		eng.Enqueue(recording.Command{Type: recording.CmdCommitRecording, Entity: playerEntity})
	case dispatch.KeyBracketLeft, dispatch.KeyBracketRight:
		eng.Enqueue(recording.Command{Type: recording.CmdStopRecording, Entity: playerEntity, StopReason: recording.ArenaTransition})
	}
	return false
}

func toggleRecording(eng *engine.Engine) {
	switch eng.Machine().Mode() {
	case recording.Idle:
		eng.Enqueue(recording.Command{Type: recording.CmdStartRecording, Entity: playerEntity, Arena: eng.Machine().Arena()})
	case recording.Recording:
		eng.Enqueue(recording.Command{Type: recording.CmdStopRecording, Entity: playerEntity, StopReason: recording.UserInterrupted})
	}
}
