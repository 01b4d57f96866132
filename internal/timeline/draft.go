package timeline

import "sort"

// Draft is the append-ordered buffer a character's recording writes into. It
// is owned uniquely by whichever entity is currently recording: the
// recording state machine (package recording) attaches one Draft per
// recording target and destroys it exactly once, by Publish or by discard.
type Draft struct {
	events []Event
}

// NewDraft returns an empty draft timeline.
func NewDraft() *Draft {
	return &Draft{}
}

// Len reports the number of recorded events.
func (d *Draft) Len() int {
	if d == nil {
		return 0
	}
	return len(d.events)
}

// Events returns the recorded events in timestamp order. The returned slice
// aliases the draft's backing storage and must be treated as read-only.
func (d *Draft) Events() []Event {
	if d == nil {
		return nil
	}
	return d.events
}

// Clear empties the draft, discarding every recorded event.
func (d *Draft) Clear() {
	if d == nil {
		return
	}
	d.events = d.events[:0]
}

// Insert adds event at the position found by binary search on timestamp.
// Events that tie on timestamp are appended after the existing run of equal
// timestamps, so replay order matches capture order for same-tick events.
func (d *Draft) Insert(event Event) error {
	if d == nil {
		return newError(ErrOperationFailed, "insert into nil draft")
	}
	idx := sort.Search(len(d.events), func(i int) bool {
		return d.events[i].Timestamp.Seconds() > event.Timestamp.Seconds()
	})
	if idx < 0 || idx > len(d.events) {
		return newError(ErrOperationFailed, "insertion index %d out of range for length %d", idx, len(d.events))
	}
	d.events = append(d.events, Event{})
	copy(d.events[idx+1:], d.events[idx:])
	d.events[idx] = event
	return nil
}
