package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/reactive/cfgloader"
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/rise-and-shine/reactive/scheduler"
)

func TestExamples(t *testing.T) {
	cfg, err := cfgloader.LoadFile[Config]("config/test.yaml", cfgloader.WithSilent())
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewWithCore(core)

	sched := scheduler.New(scheduler.WithLogger(log))
	t.Cleanup(func() { _ = sched.Stop() })

	ex := newExamples(cfg, log, sched)
	ex.runMono()
	require.NoError(t, ex.runFlux(t.Context()))

	said := func(msg string) int {
		return logs.FilterMessage(msg).Len()
	}

	// block, subscribe, delay
	assert.Equal(t, 3, said("My Name is John Cleese."))
	// transform, subscribe, filter, delay, delay+filter
	assert.Equal(t, 5, said("My Name is Terry Jones."))
	// subscribe, delay, delay+filter
	assert.Equal(t, 3, said("My Name is Michael Palin."))
	assert.Equal(t, 2, said("My Name is Graham Chapman."))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "NO_VALUE", warnings[0].ContextMap()["error_code"])

	assert.Equal(t, 1, said("collected commands"))
}
