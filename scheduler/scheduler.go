// Package scheduler runs the producer side of reactive streams.
//
// Each submitted task runs on its own goroutine, so a subscriber is never
// blocked by the producer it started. Tasks are wrapped the same way for
// every stream: metadata injection, tracing, panic recovery and metrics.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/code19m/errx"
	"github.com/rcrowley/go-metrics"
	"github.com/rise-and-shine/reactive/meta"
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Task is a unit of producer work.
type Task func(ctx context.Context) error

// Scheduler drives asynchronous emission and delays between elements.
type Scheduler interface {
	// Submit starts task on a separate goroutine and returns without waiting for it.
	Submit(ctx context.Context, name string, task Task) (*Job, error)

	// Delay suspends the calling task for d. It returns early with an error
	// when ctx is done or the scheduler is stopped.
	Delay(ctx context.Context, d time.Duration) error

	// Stop rejects new tasks and waits for in-flight ones to return.
	Stop() error

	// Stats returns a snapshot of the task counters.
	Stats() Stats
}

type scheduler struct {
	logger          logger.Logger
	tracer          trace.Tracer
	shutdownTimeout time.Duration

	submitted metrics.Counter
	completed metrics.Counter
	failed    metrics.Counter
	panicked  metrics.Counter
	durations metrics.Histogram

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
	stopCh  chan struct{}
}

// New creates a Scheduler ready to accept tasks.
func New(opts ...Option) Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = logger.Named("reactive.scheduler")
	}
	if o.registry == nil {
		o.registry = metrics.NewRegistry()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}

	return &scheduler{
		logger:          o.logger,
		tracer:          o.tracerProvider.Tracer(o.tracerName),
		shutdownTimeout: o.shutdownTimeout,

		submitted: metrics.GetOrRegisterCounter(MetricSubmitted, o.registry),
		completed: metrics.GetOrRegisterCounter(MetricCompleted, o.registry),
		failed:    metrics.GetOrRegisterCounter(MetricFailed, o.registry),
		panicked:  metrics.GetOrRegisterCounter(MetricPanicked, o.registry),
		durations: metrics.GetOrRegisterHistogram(MetricDuration, o.registry, metrics.NewUniformSample(sampleSize)),

		stopCh: make(chan struct{}),
	}
}

func (s *scheduler) Submit(ctx context.Context, name string, task Task) (*Job, error) {
	if task == nil {
		return nil, errx.New("[scheduler]: task is required", errx.WithCode(CodeInvalidTask))
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil, errx.New("[scheduler]: scheduler stopped",
			errx.WithCode(CodeSchedulerStopped),
			errx.WithDetails(errx.D{"task_name": name}))
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.submitted.Inc(1)

	job := newJob(name)
	go func() {
		defer s.wg.Done()
		job.finish(s.run(ctx, name, task))
	}()

	return job, nil
}

func (s *scheduler) Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return errx.Wrap(ctx.Err())
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errx.Wrap(ctx.Err(), errx.WithCode(CodeDelayCancelled))
	case <-s.stopCh:
		return errx.New("[scheduler]: stopped during delay", errx.WithCode(CodeSchedulerStopped))
	}
}

func (s *scheduler) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		s.logger.Debug("[scheduler]: stopped")
		return nil
	case <-time.After(s.shutdownTimeout):
		return errx.New("[scheduler]: shutdown timeout exceeded",
			errx.WithCode(CodeShutdownTimeout),
			errx.WithDetails(errx.D{"timeout": s.shutdownTimeout.String()}))
	}
}

// run executes task with metadata, tracing, panic recovery and metrics around it.
func (s *scheduler) run(ctx context.Context, name string, task Task) error {
	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.TaskName: name})

	ctx, span := s.tracer.Start(ctx, "RUN "+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("reactive.task", name)),
	)
	defer span.End()

	log := s.logger.WithContext(ctx)
	start := time.Now()

	var err error
	var pc panics.Catcher
	pc.Try(func() {
		err = task(ctx)
	})
	if r := pc.Recovered(); r != nil {
		s.panicked.Inc(1)
		err = errx.New("[scheduler]: task panicked",
			errx.WithCode(CodeTaskPanicked),
			errx.WithDetails(errx.D{
				"panic_message": fmt.Sprintf("%v", r.Value),
				"stack_trace":   string(r.Stack),
			}))
	}

	s.durations.Update(int64(time.Since(start)))

	if err != nil {
		s.failed.Inc(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.With("duration", time.Since(start)).Debug("[scheduler]: task failed: " + err.Error())
		return err
	}

	s.completed.Inc(1)
	log.With("duration", time.Since(start)).Debug("[scheduler]: task completed")
	return nil
}
