package timeline

import (
	"sort"

	"arenic/internal/arenatime"
)

// Published is the immutable, cheaply-shareable sequence of events produced
// by committing a Draft. Callers share a *Published by passing the pointer
// around; nothing about it is ever mutated after Publish returns, so no
// synchronization is required to read it concurrently.
type Published struct {
	events []Event
}

// Publish takes ownership of draft's backing storage and returns an
// immutable Published built from it without copying a single element. draft
// is left empty and must not be reused; this is the Draft's one-way
// transition out of existence by commit (the other being discard via
// Clear).
func Publish(draft *Draft) *Published {
	if draft == nil {
		return &Published{}
	}
	events := draft.events
	draft.events = nil
	return &Published{events: events}
}

// Len reports the number of events in the timeline.
func (p *Published) Len() int {
	if p == nil {
		return 0
	}
	return len(p.events)
}

func validateNonNegative(kind string, t arenatime.Stamp) error {
	if t.Seconds() < 0 {
		return newError(ErrOperationFailed, "%s: timestamp %v is negative", kind, t)
	}
	return nil
}

// EventsInRange returns the events with start <= t < end, per the C2
// contract. The returned slice aliases the timeline's storage.
func (p *Published) EventsInRange(start, end arenatime.Stamp) ([]Event, error) {
	if err := validateNonNegative("events_in_range", start); err != nil {
		return nil, err
	}
	if err := validateNonNegative("events_in_range", end); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	lo, hi := p.bounds(start, end, true, false)
	return p.events[lo:hi], nil
}

// NextEventAfter returns the first event with timestamp strictly greater
// than t.
func (p *Published) NextEventAfter(t arenatime.Stamp) (Event, bool, error) {
	if err := validateNonNegative("next_event_after", t); err != nil {
		return Event{}, false, err
	}
	if p == nil {
		return Event{}, false, nil
	}
	idx := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Timestamp.Seconds() > t.Seconds()
	})
	if idx >= len(p.events) {
		return Event{}, false, nil
	}
	return p.events[idx], true, nil
}

// PrevEventBefore returns the last event with timestamp strictly less than
// t.
func (p *Published) PrevEventBefore(t arenatime.Stamp) (Event, bool, error) {
	if err := validateNonNegative("prev_event_before", t); err != nil {
		return Event{}, false, err
	}
	if p == nil {
		return Event{}, false, nil
	}
	idx := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Timestamp.Seconds() >= t.Seconds()
	})
	if idx == 0 {
		return Event{}, false, nil
	}
	return p.events[idx-1], true, nil
}

// EventsAfterThrough returns the events with low < t <= high: exclusive on
// the low side, inclusive on the high side. This is the range shape the
// playback dispatcher needs for a normal (non-wrapping) tick, where the
// previously observed clock value must not be re-dispatched but the current
// tick's boundary value must be.
func (p *Published) EventsAfterThrough(low, high arenatime.Stamp) ([]Event, error) {
	if err := validateNonNegative("events_after_through", low); err != nil {
		return nil, err
	}
	if err := validateNonNegative("events_after_through", high); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	lo, hi := p.bounds(low, high, false, true)
	return p.events[lo:hi], nil
}

// EventsFromThrough returns the events with low <= t <= high: inclusive on
// both sides. The dispatcher uses this for a ghost's first tick and for the
// head of the new cycle on a wrap-around tick, so an event at exactly
// timestamp 0 is dispatched; the old cycle's tail uses EventsAfterThrough.
func (p *Published) EventsFromThrough(low, high arenatime.Stamp) ([]Event, error) {
	if err := validateNonNegative("events_from_through", low); err != nil {
		return nil, err
	}
	if err := validateNonNegative("events_from_through", high); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	lo, hi := p.bounds(low, high, true, true)
	return p.events[lo:hi], nil
}

// bounds runs the two binary searches shared by every range query. lowIncl
// and highIncl select whether each boundary is inclusive.
func (p *Published) bounds(low, high arenatime.Stamp, lowIncl, highIncl bool) (int, int) {
	lo := sort.Search(len(p.events), func(i int) bool {
		if lowIncl {
			return p.events[i].Timestamp.Seconds() >= low.Seconds()
		}
		return p.events[i].Timestamp.Seconds() > low.Seconds()
	})
	hi := sort.Search(len(p.events), func(i int) bool {
		if highIncl {
			return p.events[i].Timestamp.Seconds() > high.Seconds()
		}
		return p.events[i].Timestamp.Seconds() >= high.Seconds()
	})
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
