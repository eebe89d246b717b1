// Package latch provides a countdown gate: a one-shot synchronization
// primitive that releases its waiters once it has been counted down n times.
package latch

import (
	"context"
	"sync"

	"github.com/code19m/errx"
)

// Latch blocks callers of Await until CountDown has been called count times.
// The zero value is not usable, create one with New.
type Latch struct {
	mu    sync.Mutex
	count int
	done  chan struct{}
}

// New creates a latch with the given count. A count of zero or less yields an open latch.
func New(count int) *Latch {
	l := &Latch{
		count: max(count, 0),
		done:  make(chan struct{}),
	}
	if l.count == 0 {
		close(l.done)
	}
	return l
}

// CountDown decrements the count and releases waiters when it reaches zero.
// Calls after the latch opened are no-ops.
func (l *Latch) CountDown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return
	}
	l.count--
	if l.count == 0 {
		close(l.done)
	}
}

// Count returns the remaining count.
func (l *Latch) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Done returns a channel closed when the latch opens.
func (l *Latch) Done() <-chan struct{} {
	return l.done
}

// Await blocks until the latch opens or ctx is done.
func (l *Latch) Await(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return errx.Wrap(ctx.Err(), errx.WithCode(CodeAwaitCancelled), errx.WithDetails(errx.D{
			"remaining": l.Count(),
		}))
	}
}
