// Package metrics exports typing test counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/verte-zerg/typesprint/internal/diff"
	"github.com/verte-zerg/typesprint/internal/stats"
)

const namespace = "typesprint"

// Recorder implements session.Observer and tracks open connections.
type Recorder struct {
	sessionsStarted   prometheus.Counter
	sessionsCompleted prometheus.Counter
	inputEvents       prometheus.Counter
	wpm               prometheus.Histogram
	accuracy          prometheus.Histogram
	duration          prometheus.Histogram
	connections       prometheus.Gauge
}

// New registers the recorder's collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		sessionsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Typing tests started.",
		}),
		sessionsCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Typing tests completed.",
		}),
		inputEvents: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_events_total",
			Help:      "Input-change events applied to active sessions.",
		}),
		wpm: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_wpm",
			Help:      "Words per minute of completed sessions.",
			Buckets:   prometheus.LinearBuckets(10, 10, 15),
		}),
		accuracy: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_accuracy_percent",
			Help:      "Accuracy of completed sessions.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Time from start to completion.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open browser connections.",
		}),
	}
}

// SessionStarted implements session.Observer.
func (r *Recorder) SessionStarted() {
	r.sessionsStarted.Inc()
}

// InputApplied implements session.Observer.
func (r *Recorder) InputApplied(diff.Result) {
	r.inputEvents.Inc()
}

// SessionCompleted implements session.Observer.
func (r *Recorder) SessionCompleted(res stats.Result) {
	r.sessionsCompleted.Inc()
	r.wpm.Observe(float64(res.WPM))
	r.accuracy.Observe(float64(res.Accuracy))
	r.duration.Observe(res.Elapsed.Seconds())
}

// ConnectionOpened increments the open connection gauge.
func (r *Recorder) ConnectionOpened() {
	r.connections.Inc()
}

// ConnectionClosed decrements the open connection gauge.
func (r *Recorder) ConnectionClosed() {
	r.connections.Dec()
}
