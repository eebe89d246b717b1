package main

import (
	"context"
	"time"

	"github.com/rise-and-shine/reactive/cfgloader"
	"github.com/rise-and-shine/reactive/meta"
	"github.com/rise-and-shine/reactive/observability/logger"
	"github.com/rise-and-shine/reactive/observability/tracing"
	"github.com/rise-and-shine/reactive/person"
	"github.com/rise-and-shine/reactive/scheduler"
)

type Config struct {
	Service struct {
		Name    string `yaml:"name"    default:"reactive-examples"`
		Version string `yaml:"version" default:"dev"`
	} `yaml:"service"`

	Logger  logger.Config  `yaml:"logger"`
	Tracing tracing.Config `yaml:"tracing"`

	// Delay is the pause before each element of the delayed examples.
	Delay time.Duration `yaml:"delay" default:"1s"`

	// Timeout bounds how long the demo waits for one delayed example.
	Timeout time.Duration `yaml:"timeout" default:"30s"`

	People []person.Person `yaml:"people" validate:"min=4,dive"`
}

func main() {
	cfg := cfgloader.MustLoad[Config]()

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)
	logger.SetGlobal(cfg.Logger)
	defer logger.Sync() //nolint:errcheck // nothing left to report to

	ctx := meta.WithService(context.Background())
	log := logger.Named("reactive.examples").WithContext(ctx)

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() {
		if shutdownErr := shutdownTracer(); shutdownErr != nil {
			log.Warnx(shutdownErr)
		}
	}()

	sched := scheduler.New()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Warnx(err)
		}
	}()

	ex := newExamples(cfg, log, sched)
	ex.runMono()

	if err := ex.runFlux(ctx); err != nil {
		log.Errorx(err)
	}

	stats := sched.Stats()
	log.With(
		"submitted", stats.Submitted,
		"completed", stats.Completed,
		"failed", stats.Failed,
		"mean_duration", stats.MeanDuration,
	).Info("scheduler stats")
}
