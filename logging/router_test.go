package logging

import (
	"context"
	"testing"
	"time"
)

type recordingSink struct {
	events []Event
}

func (r *recordingSink) Write(e Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) Close(context.Context) error { return nil }

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func TestRouterForwardsToEnabledSink(t *testing.T) {
	cfg := DefaultConfig()
	sink := &recordingSink{}
	router, err := NewRouter(cfg, fixedClock{now: time.Unix(0, 0)}, nil, map[string]Sink{"console": sink})
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), Event{Type: "recording_state_changed", Category: CategoryRecording})

	deadline := time.Now().Add(time.Second)
	for len(sink.events) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if len(sink.events) != 1 {
		t.Fatalf("sink received %d events, want 1", len(sink.events))
	}
}

func TestRouterFiltersBySeverity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSeverity = SeverityWarn
	sink := &recordingSink{}
	router, err := NewRouter(cfg, SystemClock{}, nil, map[string]Sink{"console": sink})
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), Event{Type: "ignored", Severity: SeverityDebug})
	router.Publish(context.Background(), Event{Type: "kept", Severity: SeverityWarn})

	router.Close(context.Background())
	if len(sink.events) != 1 || sink.events[0].Type != "kept" {
		t.Fatalf("events = %v, want only the warn-level event", sink.events)
	}
}

func TestUnavailableSinkIsCountedDisabled(t *testing.T) {
	cfg := Config{EnabledSinks: []string{"missing"}, BufferSize: 8}
	router, err := NewRouter(cfg, SystemClock{}, nil, nil)
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}
	defer router.Close(context.Background())

	snap := router.MetricsSnapshot()
	if snap["sink_disabled_total"] != 1 {
		t.Fatalf("sink_disabled_total = %d, want 1", snap["sink_disabled_total"])
	}
}
