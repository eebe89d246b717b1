package flux

import (
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/rise-and-shine/reactive/scheduler"
)

// SubscribeOption customizes a single subscription.
type SubscribeOption func(*subscribeOptions)

type subscribeOptions struct {
	onComplete func()
	onError    func(error)
	scheduler  scheduler.Scheduler
	logger     logger.Logger
}

// WithOnComplete sets the callback invoked once after the last element.
func WithOnComplete(fn func()) SubscribeOption {
	return func(o *subscribeOptions) {
		o.onComplete = fn
	}
}

// WithOnError sets the callback invoked instead of completion when the
// producer or a callback fails. Default: log the error.
func WithOnError(fn func(error)) SubscribeOption {
	return func(o *subscribeOptions) {
		o.onError = fn
	}
}

// WithScheduler runs the producer on s. The caller keeps ownership of s.
// Default: a scheduler private to the subscription, stopped when it ends.
func WithScheduler(s scheduler.Scheduler) SubscribeOption {
	return func(o *subscribeOptions) {
		o.scheduler = s
	}
}

// WithLogger sets the logger for subscription lifecycle entries.
// Default: the global logger named "reactive.flux".
func WithLogger(l logger.Logger) SubscribeOption {
	return func(o *subscribeOptions) {
		o.logger = l
	}
}

func buildSubscribeOptions(opts []SubscribeOption) subscribeOptions {
	o := subscribeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("reactive.flux")
	}
	if o.onComplete == nil {
		o.onComplete = func() {}
	}
	return o
}
