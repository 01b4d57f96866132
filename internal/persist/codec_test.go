package persist

import (
	"bytes"
	"testing"

	"arenic/internal/ability"
	"arenic/internal/arenatime"
	"arenic/internal/grid"
	"arenic/internal/timeline"
)

func TestEncodeDecodeEventRoundTrip(t *testing.T) {
	cases := []timeline.Event{
		timeline.NewMovement(arenatime.New(12.5), grid.Vector{X: 1, Y: -1}),
		timeline.NewAbility(arenatime.New(30), ability.HolyNova, timeline.NoneTarget),
		timeline.NewAbility(arenatime.New(45), ability.AutoShot, timeline.TargetingEntity("e2")),
		timeline.NewDeath(arenatime.New(90)),
	}
	for _, want := range cases {
		buf, err := EncodeEvent(nil, want)
		if err != nil {
			t.Fatalf("EncodeEvent(%v): %v", want, err)
		}
		got, rest, err := DecodeEvent(buf)
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if len(rest) != 0 {
			t.Fatalf("rest = %d bytes, want 0", len(rest))
		}
		if got.Kind != want.Kind || got.Timestamp != want.Timestamp {
			t.Fatalf("got = %+v, want kind/timestamp of %+v", got, want)
		}
		if want.Kind == timeline.Movement && got.Delta != want.Delta {
			t.Fatalf("Delta = %v, want %v", got.Delta, want.Delta)
		}
		if want.Kind == timeline.Ability && got.AbilityID != want.AbilityID {
			t.Fatalf("AbilityID = %v, want %v", got.AbilityID, want.AbilityID)
		}
	}
}

func TestEncodeTimelineThenDecodeThenReencodeIsByteIdentical(t *testing.T) {
	draft := timeline.NewDraft()
	_ = draft.Insert(timeline.NewMovement(arenatime.New(1), grid.Vector{X: 1}))
	_ = draft.Insert(timeline.NewAbility(arenatime.New(2), ability.PoisonShot, timeline.NoneTarget))
	_ = draft.Insert(timeline.NewDeath(arenatime.New(3)))
	published := timeline.Publish(draft)

	first, err := EncodeTimeline(published)
	if err != nil {
		t.Fatalf("EncodeTimeline: %v", err)
	}

	decoded, err := DecodeTimeline(first)
	if err != nil {
		t.Fatalf("DecodeTimeline: %v", err)
	}
	second, err := EncodeTimeline(decoded)
	if err != nil {
		t.Fatalf("EncodeTimeline (re-encode): %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("commit invariance violated: re-encoded bytes differ\nfirst:  %x\nsecond: %x", first, second)
	}
}

func TestDecodeEventTruncatedHeaderIsError(t *testing.T) {
	if _, _, err := DecodeEvent([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected an error for a truncated header")
	}
}

func TestDecodeEventUnknownTagIsError(t *testing.T) {
	buf, _ := EncodeEvent(nil, timeline.NewDeath(arenatime.New(1)))
	buf[4] = 0xFF
	if _, _, err := DecodeEvent(buf); err == nil {
		t.Fatalf("expected an error for an unknown tag")
	}
}

func TestEncodeTimelineNilIsEmpty(t *testing.T) {
	buf, err := EncodeTimeline(nil)
	if err != nil {
		t.Fatalf("EncodeTimeline(nil): %v", err)
	}
	if len(buf) != 0 {
		t.Fatalf("buf = %x, want empty", buf)
	}
}
