// Package persist implements the binary round-trip codec for a published
// timeline: one fixed-layout record per event, with no surrounding file
// framing (that is left to whatever composition-root storage wires this
// in).
package persist

import (
	"encoding/binary"
	"fmt"
	"math"

	"arenic/internal/ability"
	"arenic/internal/arenatime"
	"arenic/internal/grid"
	"arenic/internal/timeline"
)

// tag is the 1-byte discriminant written after every event's timestamp.
type tag uint8

const (
	tagMovement tag = 0
	tagAbility  tag = 1
	tagDeath    tag = 2
)

// headerSize is the timestamp (4 bytes, f32 LE) plus the tag byte.
const headerSize = 5

// EncodeEvent appends event's wire representation to buf and returns the
// extended slice: 4-byte little-endian IEEE-754 f32 timestamp, 1-byte kind
// tag, then a tag-specific payload (Movement: two little-endian i32;
// Ability: 1-byte ability id then 1-byte has-target flag; Death: empty).
func EncodeEvent(buf []byte, event timeline.Event) ([]byte, error) {
	var head [headerSize]byte
	binary.LittleEndian.PutUint32(head[0:4], math.Float32bits(float32(event.Timestamp.Seconds())))

	switch event.Kind {
	case timeline.Movement:
		head[4] = byte(tagMovement)
		buf = append(buf, head[:]...)
		var payload [8]byte
		binary.LittleEndian.PutUint32(payload[0:4], uint32(event.Delta.X))
		binary.LittleEndian.PutUint32(payload[4:8], uint32(event.Delta.Y))
		buf = append(buf, payload[:]...)
	case timeline.Ability:
		head[4] = byte(tagAbility)
		buf = append(buf, head[:]...)
		hasTarget := byte(0)
		if event.Target.Kind != timeline.NoTarget {
			hasTarget = 1
		}
		buf = append(buf, event.AbilityID.Code(), hasTarget)
	case timeline.Death:
		head[4] = byte(tagDeath)
		buf = append(buf, head[:]...)
	default:
		return nil, fmt.Errorf("persist: unknown event kind %v", event.Kind)
	}
	return buf, nil
}

// DecodeEvent reads one event record from the front of buf and returns the
// event, the unconsumed remainder of buf, and an error if buf is truncated
// or carries an unrecognised tag or ability code.
func DecodeEvent(buf []byte) (timeline.Event, []byte, error) {
	if len(buf) < headerSize {
		return timeline.Event{}, nil, fmt.Errorf("persist: truncated record header (%d bytes)", len(buf))
	}
	ts := arenatime.New(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	t := tag(buf[4])
	rest := buf[headerSize:]

	switch t {
	case tagMovement:
		if len(rest) < 8 {
			return timeline.Event{}, nil, fmt.Errorf("persist: truncated movement payload (%d bytes)", len(rest))
		}
		x := int32(binary.LittleEndian.Uint32(rest[0:4]))
		y := int32(binary.LittleEndian.Uint32(rest[4:8]))
		event := timeline.NewMovement(ts, grid.Vector{X: x, Y: y})
		return event, rest[8:], nil
	case tagAbility:
		if len(rest) < 2 {
			return timeline.Event{}, nil, fmt.Errorf("persist: truncated ability payload (%d bytes)", len(rest))
		}
		id, ok := ability.FromCode(rest[0])
		if !ok {
			return timeline.Event{}, nil, fmt.Errorf("persist: unknown ability code %d", rest[0])
		}
		target := timeline.NoneTarget
		if rest[1] != 0 {
			target = timeline.Target{Kind: timeline.TargetEntity}
		}
		event := timeline.NewAbility(ts, id, target)
		return event, rest[2:], nil
	case tagDeath:
		event := timeline.NewDeath(ts)
		return event, rest, nil
	default:
		return timeline.Event{}, nil, fmt.Errorf("persist: unknown tag %d", t)
	}
}

// EncodeTimeline serializes every event in order, concatenating their
// records with no separators or length prefix.
func EncodeTimeline(published *timeline.Published) ([]byte, error) {
	if published == nil {
		return nil, nil
	}
	events, err := published.EventsFromThrough(arenatime.Zero, arenatime.Max)
	if err != nil {
		return nil, err
	}
	var buf []byte
	for _, event := range events {
		buf, err = EncodeEvent(buf, event)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// DecodeTimeline parses buf into a sequence of events and publishes them as
// a Published timeline. Each event goes through Draft.Insert, so the result
// is in timestamp order even when the records are not, with records of equal
// timestamp kept in the order they were read.
func DecodeTimeline(buf []byte) (*timeline.Published, error) {
	draft := timeline.NewDraft()
	for len(buf) > 0 {
		event, rest, err := DecodeEvent(buf)
		if err != nil {
			return nil, err
		}
		if err := draft.Insert(event); err != nil {
			return nil, err
		}
		buf = rest
	}
	return timeline.Publish(draft), nil
}
