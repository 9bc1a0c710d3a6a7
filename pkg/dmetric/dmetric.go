package dmetric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts endpoint activity. A nil *Recorder records nothing.
type Recorder struct {
	dispatched     *prometheus.CounterVec
	dispatchTime   *prometheus.HistogramVec
	panics         *prometheus.CounterVec
	connections    prometheus.Gauge
	decodeFailures prometheus.Counter
	sent           prometheus.Counter
}

// NewRecorder registers the endpoint metrics on reg. A nil reg leaves them
// unregistered.
func NewRecorder(reg prometheus.Registerer, namespace string) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		dispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "events_dispatched_total",
			Help:      "Total number of events delivered to listeners",
		}, []string{"kind"}),
		dispatchTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent in listeners per event",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		panics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "listener_panics_total",
			Help:      "Listener panics recovered by the dispatch loop",
		}, []string{"kind"}),
		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "connections",
			Help:      "Currently open connections",
		}),
		decodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "decode_failures_total",
			Help:      "Messages dropped because they could not be decoded",
		}),
		sent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "endpoint",
			Name:      "objects_sent_total",
			Help:      "Objects written to connections",
		}),
	}
}

func (r *Recorder) Dispatched(kind string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.dispatched.WithLabelValues(kind).Inc()
	r.dispatchTime.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (r *Recorder) Panicked(kind string) {
	if r == nil {
		return
	}
	r.panics.WithLabelValues(kind).Inc()
}

func (r *Recorder) Opened() {
	if r == nil {
		return
	}
	r.connections.Inc()
}

func (r *Recorder) Closed() {
	if r == nil {
		return
	}
	r.connections.Dec()
}

func (r *Recorder) DecodeFailed() {
	if r == nil {
		return
	}
	r.decodeFailures.Inc()
}

func (r *Recorder) Sent() {
	if r == nil {
		return
	}
	r.sent.Inc()
}
