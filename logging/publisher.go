// Package logging is the router-and-sink telemetry fan-out adapted from the
// simulation logging stack: the recording/playback engine publishes an Event
// for each recording state transition, and the router fans them out to
// configured Sinks without blocking the tick loop.
package logging

import (
	"context"
	"time"
)

// Category groups events by subsystem for filtering.
type Category string

const (
	// CategoryRecording covers FSM transitions and command rejections.
	CategoryRecording Category = "recording"
	// CategoryCapture covers per-tick movement/ability capture.
	CategoryCapture Category = "capture"
	// CategoryPlayback covers per-tick ghost dispatch.
	CategoryPlayback Category = "playback"
	// CategoryClock covers arena clock checkpoints and pause transitions.
	CategoryClock Category = "clock"
)

// Severity expresses the importance of a telemetry event.
type Severity int

const (
	// SeverityDebug is verbose diagnostic information.
	SeverityDebug Severity = iota
	// SeverityInfo is routine operational telemetry.
	SeverityInfo
	// SeverityWarn indicates a rejected command or recoverable anomaly.
	SeverityWarn
	// SeverityError indicates a contract violation worth investigating.
	SeverityError
)

// EntityKind differentiates actors within the simulation.
type EntityKind string

// EntityRef identifies the actor involved in an event.
type EntityRef struct {
	ID   string
	Kind EntityKind
}

// Event describes a semantic occurrence within the recording/playback core.
type Event struct {
	Type     string
	Arena    int
	Time     time.Time
	Actor    EntityRef
	Severity Severity
	Category Category
	Payload  any
	Extra    map[string]any
}

// Publisher emits telemetry events without blocking the tick loop.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher is a Publisher that drops all events.
type NopPublisher struct{}

// Publish implements Publisher by discarding event.
func (NopPublisher) Publish(context.Context, Event) {}
