package endpoint

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/CoverConnect/egonet/pkg/dmetric"
	"github.com/CoverConnect/egonet/pkg/instrument"
	"github.com/CoverConnect/egonet/pkg/logging"
)

// Option configures a Server or Client.
type Option func(*options)

type options struct {
	registry          *Registry
	logger            zerolog.Logger
	idleThreshold     time.Duration
	idleCheckInterval time.Duration
	keepAlive         time.Duration
	timeout           time.Duration
	queueSize         int
	readLimit         int64
	metrics           *dmetric.Recorder
	tracer            trace.Tracer
}

func newOptions(opts []Option) options {
	o := options{
		logger:            logging.Component("endpoint"),
		idleCheckInterval: time.Second,
		keepAlive:         8 * time.Second,
		timeout:           12 * time.Second,
		queueSize:         256,
		readLimit:         1 << 20,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.tracer == nil {
		o.tracer = instrument.Tracer()
	}
	if o.idleCheckInterval <= 0 {
		o.idleCheckInterval = time.Second
	}
	if o.queueSize < 0 {
		o.queueSize = 0
	}
	return o
}

// WithRegistry sets the type registry shared by every connection. Defaults
// to an empty registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger. Defaults to the process logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIdleThreshold sets the idle threshold given to new connections. Zero
// disables idle notifications until a connection sets its own.
func WithIdleThreshold(d time.Duration) Option {
	return func(o *options) { o.idleThreshold = d }
}

// WithIdleCheckInterval sets how often the dispatch loop looks for idle
// connections.
func WithIdleCheckInterval(d time.Duration) Option {
	return func(o *options) { o.idleCheckInterval = d }
}

// WithKeepAlive sets the ping interval. Zero disables pings.
func WithKeepAlive(d time.Duration) Option {
	return func(o *options) { o.keepAlive = d }
}

// WithTimeout closes connections that have been silent, pongs included, for
// longer than d. Zero disables the read deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithQueueSize sets how many undelivered events may be buffered before
// reader goroutines block.
func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

// WithReadLimit sets the maximum size of an incoming message in bytes.
func WithReadLimit(n int64) Option {
	return func(o *options) { o.readLimit = n }
}

func WithMetrics(r *dmetric.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}
