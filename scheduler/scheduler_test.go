package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rise-and-shine/reactive/meta"
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/rise-and-shine/reactive/scheduler"
)

func newScheduler(t *testing.T, opts ...scheduler.Option) scheduler.Scheduler {
	t.Helper()

	nop, err := logger.New(logger.Config{Disable: true})
	require.NoError(t, err)

	s := scheduler.New(append([]scheduler.Option{scheduler.WithLogger(nop)}, opts...)...)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestSubmit_DoesNotBlockCaller(t *testing.T) {
	s := newScheduler(t)
	release := make(chan struct{})

	start := time.Now()
	job, err := s.Submit(t.Context(), "blocked", func(ctx context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	select {
	case <-job.Done():
		t.Fatal("job finished before it was released")
	default:
	}

	close(release)
	require.NoError(t, job.Wait(t.Context()))
	assert.Equal(t, "blocked", job.Name())
}

func TestSubmit_InjectsTaskName(t *testing.T) {
	s := newScheduler(t)

	var seen atomic.Value
	job, err := s.Submit(t.Context(), "people-producer", func(ctx context.Context) error {
		seen.Store(meta.ExtractMetaFromContext(ctx)[meta.TaskName])
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, job.Wait(t.Context()))

	assert.Equal(t, "people-producer", seen.Load())
}

func TestSubmit_TaskError(t *testing.T) {
	s := newScheduler(t)
	boom := errors.New("boom")

	job, err := s.Submit(t.Context(), "failing", func(context.Context) error { return boom })
	require.NoError(t, err)

	require.ErrorIs(t, job.Wait(t.Context()), boom)
	assert.ErrorIs(t, job.Err(), boom)
	assert.Equal(t, int64(1), s.Stats().Failed)
}

func TestSubmit_RecoversPanic(t *testing.T) {
	s := newScheduler(t)

	job, err := s.Submit(t.Context(), "panicking", func(context.Context) error {
		panic("producer exploded")
	})
	require.NoError(t, err)

	err = job.Wait(t.Context())
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, scheduler.CodeTaskPanicked))

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Panicked)
	assert.Equal(t, int64(1), stats.Failed)
}

func TestSubmit_NilTask(t *testing.T) {
	s := newScheduler(t)

	_, err := s.Submit(t.Context(), "nil", nil)

	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, scheduler.CodeInvalidTask))
}

func TestSubmit_AfterStop(t *testing.T) {
	s := newScheduler(t)
	require.NoError(t, s.Stop())

	_, err := s.Submit(t.Context(), "late", func(context.Context) error { return nil })

	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, scheduler.CodeSchedulerStopped))
}

func TestDelay(t *testing.T) {
	t.Run("waits the full duration", func(t *testing.T) {
		s := newScheduler(t)

		start := time.Now()
		require.NoError(t, s.Delay(t.Context(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancelled by context", func(t *testing.T) {
		s := newScheduler(t)
		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		err := s.Delay(ctx, time.Minute)

		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, scheduler.CodeDelayCancelled))
	})

	t.Run("interrupted by stop", func(t *testing.T) {
		s := newScheduler(t)

		job, err := s.Submit(t.Context(), "sleeper", func(ctx context.Context) error {
			return s.Delay(ctx, time.Minute)
		})
		require.NoError(t, err)

		require.NoError(t, s.Stop())
		assert.True(t, errx.IsCodeIn(job.Err(), scheduler.CodeSchedulerStopped))
	})
}

func TestStop_Timeout(t *testing.T) {
	s := newScheduler(t, scheduler.WithShutdownTimeout(10*time.Millisecond))
	release := make(chan struct{})
	defer close(release)

	_, err := s.Submit(t.Context(), "stubborn", func(context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	err = s.Stop()
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, scheduler.CodeShutdownTimeout))
}

func TestStats_SharedRegistry(t *testing.T) {
	registry := metrics.NewRegistry()
	s := newScheduler(t, scheduler.WithRegistry(registry))

	for range 3 {
		job, err := s.Submit(t.Context(), "counted", func(context.Context) error { return nil })
		require.NoError(t, err)
		require.NoError(t, job.Wait(t.Context()))
	}

	stats := s.Stats()
	assert.Equal(t, int64(3), stats.Submitted)
	assert.Equal(t, int64(3), stats.Completed)

	counter, ok := registry.Get(scheduler.MetricCompleted).(metrics.Counter)
	require.True(t, ok)
	assert.Equal(t, int64(3), counter.Count())
}

func TestSubmit_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	s := newScheduler(t, scheduler.WithTracerProvider(tp))

	ok, err := s.Submit(t.Context(), "traced", func(context.Context) error { return nil })
	require.NoError(t, err)
	require.NoError(t, ok.Wait(t.Context()))

	failing, err := s.Submit(t.Context(), "traced-failure", func(context.Context) error { return errors.New("boom") })
	require.NoError(t, err)
	require.Error(t, failing.Wait(t.Context()))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, span := range spans {
		byName[span.Name()] = span
	}
	require.Contains(t, byName, "RUN traced")
	require.Contains(t, byName, "RUN traced-failure")
	assert.Equal(t, codes.Unset, byName["RUN traced"].Status().Code)
	assert.Equal(t, codes.Error, byName["RUN traced-failure"].Status().Code)
}
