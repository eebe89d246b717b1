package main

import (
	"context"
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/reactive/flux"
	"github.com/rise-and-shine/reactive/latch"
	"github.com/rise-and-shine/reactive/mono"
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/rise-and-shine/reactive/person"
	"github.com/rise-and-shine/reactive/scheduler"
	"github.com/samber/lo"
)

type examples struct {
	log     logger.Logger
	sched   scheduler.Scheduler
	delay   time.Duration
	timeout time.Duration
	people  []person.Person
}

func newExamples(cfg Config, log logger.Logger, sched scheduler.Scheduler) *examples {
	return &examples{
		log:     log,
		sched:   sched,
		delay:   cfg.Delay,
		timeout: cfg.Timeout,
		people:  cfg.People,
	}
}

func (e *examples) say(p person.Person) {
	e.log.Info(p.SayMyName())
}

func (e *examples) runMono() {
	john, terry, michael := e.people[0], e.people[1], e.people[2]

	p, err := mono.Just(john).Block()
	if err != nil {
		e.log.Errorx(err)
		return
	}
	e.say(p)

	cmd, err := mono.Map(mono.Just(terry), person.NewCommand).Block()
	if err != nil {
		e.log.Errorx(err)
		return
	}
	e.log.Info(cmd.SayMyName())

	_, err = mono.Just(michael).
		Filter(func(p person.Person) bool { return strings.EqualFold(p.FirstName, "foo") }).
		Block()
	if errx.IsCodeIn(err, mono.CodeNoValue) {
		e.log.Warnx(err)
	}
}

func (e *examples) runFlux(ctx context.Context) error {
	people := flux.FromSlice(e.people).Named("people")
	containsE := func(p person.Person) bool { return strings.Contains(p.FirstName, "e") }

	if err := e.await(ctx, people, "subscribe"); err != nil {
		return err
	}

	first := e.people[1].FirstName
	if err := e.await(ctx, people.Filter(func(p person.Person) bool { return p.FirstName == first }), "filter"); err != nil {
		return err
	}

	// nobody waits, so no element is delivered before the subscription is disposed
	sub := people.DelayElements(e.delay).Subscribe(ctx, e.say, flux.WithScheduler(e.sched))
	sub.Dispose()
	<-sub.Done()
	e.log.With("subscription_id", sub.ID()).Info("delayed subscription disposed before its first element")

	if err := e.await(ctx, people.DelayElements(e.delay), "delay"); err != nil {
		return err
	}

	if err := e.await(ctx, people.DelayElements(e.delay).Filter(containsE), "delay+filter"); err != nil {
		return err
	}

	cmds, err := flux.Map(people.Filter(containsE), person.NewCommand).CollectList(ctx, flux.WithScheduler(e.sched))
	if err != nil {
		return errx.Wrap(err)
	}
	e.log.With("names", lo.Map(cmds, func(c person.Command, _ int) string {
		return c.SayMyName()
	})).Info("collected commands")

	return nil
}

// await subscribes and blocks on a countdown gate released by the completion callback.
func (e *examples) await(ctx context.Context, f *flux.Flux[person.Person], example string) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	gate := latch.New(1)
	var failure error

	sub := f.Subscribe(ctx, e.say,
		flux.WithScheduler(e.sched),
		flux.WithOnComplete(gate.CountDown),
		flux.WithOnError(func(err error) {
			failure = err
			gate.CountDown()
		}),
	)

	if err := gate.Await(ctx); err != nil {
		sub.Dispose()
		return errx.Wrap(err, errx.WithDetails(errx.D{"example": example}))
	}
	if failure != nil {
		return errx.Wrap(failure, errx.WithDetails(errx.D{"example": example}))
	}

	e.log.With("example", example, "subscription_id", sub.ID()).Debug("example completed")
	return nil
}
