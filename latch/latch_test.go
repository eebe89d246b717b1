package latch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/reactive/latch"
)

func TestLatch_AwaitReleasedByCountDown(t *testing.T) {
	l := latch.New(1)

	go func() {
		time.Sleep(10 * time.Millisecond)
		l.CountDown()
	}()

	require.NoError(t, l.Await(t.Context()))
	assert.Equal(t, 0, l.Count())
}

func TestLatch_MultipleCounts(t *testing.T) {
	l := latch.New(3)

	var wg sync.WaitGroup
	for range 3 {
		wg.Go(l.CountDown)
	}
	wg.Wait()

	select {
	case <-l.Done():
	default:
		t.Fatal("latch should be open after three count downs")
	}
}

func TestLatch_ExtraCountDownIsNoop(t *testing.T) {
	l := latch.New(1)

	l.CountDown()
	l.CountDown()

	assert.Equal(t, 0, l.Count())
	require.NoError(t, l.Await(t.Context()))
}

func TestLatch_ZeroIsOpen(t *testing.T) {
	l := latch.New(0)

	require.NoError(t, l.Await(t.Context()))
}

func TestLatch_AwaitCancelled(t *testing.T) {
	l := latch.New(2)
	l.CountDown()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	err := l.Await(ctx)

	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, latch.CodeAwaitCancelled))
	assert.Equal(t, 1, l.Count())
}
