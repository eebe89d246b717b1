package flux

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/rise-and-shine/reactive/latch"
	"github.com/rise-and-shine/reactive/meta"
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/rise-and-shine/reactive/observability/tracing"
	"github.com/rise-and-shine/reactive/scheduler"
	"github.com/sourcegraph/conc/panics"
)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id       string
	cancel   context.CancelFunc
	disposed atomic.Bool
	done     chan struct{}
	err      error
}

// ID returns the unique id of the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Done is closed once the subscription terminated: completed, failed or disposed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns the terminal error, nil on completion or while still running.
func (s *Subscription) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Dispose cancels the producer. Elements still in flight are dropped and
// no terminal callback runs.
func (s *Subscription) Dispose() {
	s.disposed.Store(true)
	s.cancel()
}

// IsDisposed reports whether Dispose was called.
func (s *Subscription) IsDisposed() bool {
	return s.disposed.Load()
}

// Subscribe starts emission and returns immediately. onNext is called once per
// element, in order, never concurrently. The completion callback runs exactly
// once after the last element, or right away for an empty Flux.
func (f *Flux[T]) Subscribe(ctx context.Context, onNext func(T), opts ...SubscribeOption) *Subscription {
	o := buildSubscribeOptions(opts)

	id := uuid.NewString()
	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
		meta.TraceID:        tracing.GetStartingTraceID(ctx),
		meta.SubscriptionID: id,
		meta.StreamName:     f.name,
	})
	ctx, cancel := context.WithCancel(ctx)

	sub := &Subscription{
		id:     id,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	log := o.logger.WithContext(ctx)

	sched := o.scheduler
	owned := sched == nil
	if owned {
		sched = scheduler.New(scheduler.WithLogger(o.logger))
	}

	items := make(chan T)
	job, err := sched.Submit(ctx, "flux:"+f.name, func(ctx context.Context) error {
		defer close(items)
		return f.produce(ctx, sched, func(v T) error {
			select {
			case items <- v:
				return nil
			case <-ctx.Done():
				return errx.Wrap(ctx.Err())
			}
		})
	})
	if err != nil {
		close(items)
	}

	log.Debug("[flux]: subscribed")

	hooks := make([]func(), 0, len(f.onComplete)+1)
	hooks = append(hooks, f.onComplete...)

	c := &consumer[T]{
		sub:        sub,
		log:        log,
		onNext:     onNext,
		onComplete: append(hooks, o.onComplete),
		onError:    o.onError,
	}

	go func() {
		defer close(sub.done)
		defer cancel()

		sub.err = c.run(items, job, err)

		if owned {
			if stopErr := sched.Stop(); stopErr != nil {
				log.Warnx(stopErr)
			}
		}
	}()

	return sub
}

// CollectList subscribes and blocks until completion, returning every element.
func (f *Flux[T]) CollectList(ctx context.Context, opts ...SubscribeOption) ([]T, error) {
	gate := latch.New(1)

	var (
		items []T
		err   error
	)
	opts = append(opts,
		WithOnComplete(gate.CountDown),
		WithOnError(func(e error) {
			err = e
			gate.CountDown()
		}),
	)

	sub := f.Subscribe(ctx, func(v T) { items = append(items, v) }, opts...)

	if awaitErr := gate.Await(ctx); awaitErr != nil {
		sub.Dispose()
		<-sub.Done()
		return nil, awaitErr
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// consumer delivers elements to the subscriber callbacks.
type consumer[T any] struct {
	sub        *Subscription
	log        logger.Logger
	onNext     func(T)
	onComplete []func()
	onError    func(error)
}

// run drains items, then reports the terminal signal. It returns the terminal error.
func (c *consumer[T]) run(items <-chan T, job *scheduler.Job, submitErr error) error {
	if submitErr != nil {
		c.fail(submitErr)
		return submitErr
	}

	var failed error
	for v := range items {
		if failed != nil || c.sub.IsDisposed() {
			continue
		}
		if err := c.call(func() { c.onNext(v) }); err != nil {
			failed = err
			c.sub.cancel()
		}
	}

	<-job.Done()

	if c.sub.IsDisposed() {
		c.log.Debug("[flux]: disposed")
		return nil
	}

	err := failed
	if err == nil {
		err = job.Err()
	}
	if err != nil {
		c.fail(err)
		return err
	}

	for _, fn := range c.onComplete {
		if callErr := c.call(fn); callErr != nil {
			c.fail(callErr)
			return callErr
		}
	}
	c.log.Debug("[flux]: completed")
	return nil
}

func (c *consumer[T]) fail(err error) {
	if c.onError == nil {
		c.log.Errorx(err)
		return
	}
	if callErr := c.call(func() { c.onError(err) }); callErr != nil {
		c.log.Errorx(callErr)
	}
}

// call runs a subscriber callback, turning a panic into an error.
func (c *consumer[T]) call(fn func()) error {
	var pc panics.Catcher
	pc.Try(fn)
	if r := pc.Recovered(); r != nil {
		return errx.New("[flux]: subscriber callback panicked",
			errx.WithCode(CodeCallbackPanicked),
			errx.WithDetails(errx.D{"panic_message": fmt.Sprintf("%v", r.Value)}))
	}
	return nil
}
