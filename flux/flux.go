// Package flux implements an ordered publisher of zero or many elements.
//
// A Flux is a description of a sequence: nothing runs until Subscribe.
// Each subscription submits one producer task to a scheduler; the producer
// pushes elements through a channel to a consumer goroutine that invokes
// the subscriber callbacks one at a time, in order.
package flux

import (
	"context"
	"slices"
	"time"

	"github.com/rise-and-shine/reactive/scheduler"
)

const defaultName = "flux"

// emitFunc hands one element downstream. It fails when the subscription ended.
type emitFunc[T any] func(v T) error

// source produces the elements of a subscription by calling emit for each of them.
type source[T any] func(ctx context.Context, s scheduler.Scheduler, emit emitFunc[T]) error

// Flux is an immutable, ordered sequence of elements. Operators return new
// instances that share the upstream description.
type Flux[T any] struct {
	name       string
	produce    source[T]
	onComplete []func()
}

// Just creates a Flux emitting values in order.
func Just[T any](values ...T) *Flux[T] {
	return FromSlice(values)
}

// FromSlice creates a Flux emitting the elements of values in order.
// The slice is copied, later changes to it are not observed.
func FromSlice[T any](values []T) *Flux[T] {
	items := slices.Clone(values)
	return &Flux[T]{
		name: defaultName,
		produce: func(_ context.Context, _ scheduler.Scheduler, emit emitFunc[T]) error {
			for _, v := range items {
				if err := emit(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Empty creates a Flux that completes without emitting.
func Empty[T any]() *Flux[T] {
	return FromSlice[T](nil)
}

// Named returns a copy of f carrying name in subscription logs and task names.
func (f *Flux[T]) Named(name string) *Flux[T] {
	out := f.derive(f.produce)
	out.name = name
	return out
}

// Name returns the name given with Named.
func (f *Flux[T]) Name() string {
	return f.name
}

// Filter keeps only the elements pred holds for, preserving order.
func (f *Flux[T]) Filter(pred func(T) bool) *Flux[T] {
	upstream := f.produce
	return f.derive(func(ctx context.Context, s scheduler.Scheduler, emit emitFunc[T]) error {
		return upstream(ctx, s, func(v T) error {
			if !pred(v) {
				return nil
			}
			return emit(v)
		})
	})
}

// DelayElements waits d before emitting each element, the first one included.
// Only the producer is suspended, never the subscriber.
func (f *Flux[T]) DelayElements(d time.Duration) *Flux[T] {
	upstream := f.produce
	return f.derive(func(ctx context.Context, s scheduler.Scheduler, emit emitFunc[T]) error {
		return upstream(ctx, s, func(v T) error {
			if err := s.Delay(ctx, d); err != nil {
				return err
			}
			return emit(v)
		})
	})
}

// DoOnNext calls fn with every element before it is handed downstream.
// fn runs on the producer goroutine.
func (f *Flux[T]) DoOnNext(fn func(T)) *Flux[T] {
	upstream := f.produce
	return f.derive(func(ctx context.Context, s scheduler.Scheduler, emit emitFunc[T]) error {
		return upstream(ctx, s, func(v T) error {
			fn(v)
			return emit(v)
		})
	})
}

// DoOnComplete registers fn to run once when a subscription completes normally,
// after the last element was delivered and before the subscriber's own
// completion callback.
func (f *Flux[T]) DoOnComplete(fn func()) *Flux[T] {
	out := f.derive(f.produce)
	out.onComplete = append(out.onComplete, fn)
	return out
}

// Map transforms every element with fn.
func Map[T, U any](f *Flux[T], fn func(T) U) *Flux[U] {
	upstream := f.produce
	return &Flux[U]{
		name:       f.name,
		onComplete: slices.Clone(f.onComplete),
		produce: func(ctx context.Context, s scheduler.Scheduler, emit emitFunc[U]) error {
			return upstream(ctx, s, func(v T) error {
				return emit(fn(v))
			})
		},
	}
}

func (f *Flux[T]) derive(produce source[T]) *Flux[T] {
	return &Flux[T]{
		name:       f.name,
		produce:    produce,
		onComplete: slices.Clone(f.onComplete),
	}
}
