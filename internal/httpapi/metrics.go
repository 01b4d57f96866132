package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"arenic/internal/recording"
)

// Metrics holds the process-wide Prometheus collectors for the recording
// engine. Label sets are kept bounded: arena ids and mode/reason enums have
// fixed small cardinalities, never raw entity ids, to avoid an unbounded
// label explosion under load.
type Metrics struct {
	Transitions      *prometheus.CounterVec
	CheckpointCrossed *prometheus.CounterVec
	CaptureEvents    *prometheus.CounterVec
	PlaybackEvents   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	WSConnections    prometheus.Gauge
}

// NewMetrics registers every collector against reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid collisions with the default
// global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenic",
			Subsystem: "recording",
			Name:      "transitions_total",
			Help:      "Count of recording FSM transitions by resulting mode.",
		}, []string{"mode"}),
		CheckpointCrossed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenic",
			Subsystem: "clock",
			Name:      "checkpoints_total",
			Help:      "Count of arena clock checkpoint crossings by type.",
		}, []string{"type"}),
		CaptureEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenic",
			Subsystem: "dispatch",
			Name:      "capture_events_total",
			Help:      "Count of captured draft events by kind.",
		}, []string{"kind"}),
		PlaybackEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenic",
			Subsystem: "dispatch",
			Name:      "playback_events_total",
			Help:      "Count of dispatched ghost playback events by kind.",
		}, []string{"kind"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arenic",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status_class"}),
		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "arenic",
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Currently open WebSocket stream connections.",
		}),
	}
}

// ObserveTransitions increments the transitions counter once per state
// change, labeled by the mode it landed in.
func (m *Metrics) ObserveTransitions(changes []recording.StateChanged) {
	for _, c := range changes {
		m.Transitions.WithLabelValues(c.Current.String()).Inc()
	}
}
