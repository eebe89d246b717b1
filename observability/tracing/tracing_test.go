package tracing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rise-and-shine/reactive/observability/tracing"
)

func TestInitGlobalTracer_Disabled(t *testing.T) {
	shutdown, err := tracing.InitGlobalTracer(tracing.Config{Disable: true})

	require.NoError(t, err)
	assert.NoError(t, shutdown())
}

func TestGetStartingTraceID(t *testing.T) {
	t.Run("without span", func(t *testing.T) {
		id := tracing.GetStartingTraceID(t.Context())

		assert.True(t, strings.HasPrefix(id, "man-"))
	})

	t.Run("with span", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := tracing.NewProvider(tracing.Config{SampleRate: 1}, sdktrace.WithSpanProcessor(recorder))
		t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

		ctx, span := tp.Tracer("test").Start(t.Context(), "root")
		defer span.End()

		assert.Equal(t, span.SpanContext().TraceID().String(), tracing.GetStartingTraceID(ctx))
	})
}
