package scheduler

import (
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rise-and-shine/reactive/observability/logger"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for customizing a Scheduler instance.
type Option func(*options)

type options struct {
	logger          logger.Logger
	registry        metrics.Registry
	shutdownTimeout time.Duration
	tracerName      string
	tracerProvider  trace.TracerProvider
}

func defaultOptions() options {
	return options{
		shutdownTimeout: 10 * time.Second,
		tracerName:      "github.com/rise-and-shine/reactive/scheduler",
	}
}

// WithLogger sets the logger used for task lifecycle entries.
// Default: the global logger named "reactive.scheduler".
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegistry sets the metrics registry task counters are registered in.
// Default: a private registry per scheduler.
func WithRegistry(r metrics.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithShutdownTimeout bounds how long Stop waits for in-flight tasks.
// Default: 10s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		o.shutdownTimeout = d
	}
}

// WithTracerName sets the instrumentation name of the tracer spans are started on.
func WithTracerName(name string) Option {
	return func(o *options) {
		o.tracerName = name
	}
}

// WithTracerProvider sets the provider task spans are started on.
// Default: the global provider installed by tracing.InitGlobalTracer.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}
