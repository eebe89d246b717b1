package scheduler

import "time"

// Metric names registered by every scheduler.
const (
	MetricSubmitted = "reactive.scheduler.tasks.submitted"
	MetricCompleted = "reactive.scheduler.tasks.completed"
	MetricFailed    = "reactive.scheduler.tasks.failed"
	MetricPanicked  = "reactive.scheduler.tasks.panicked"
	MetricDuration  = "reactive.scheduler.tasks.duration"

	sampleSize = 512
)

// Stats is a point in time view of a scheduler's counters.
type Stats struct {
	Submitted    int64
	Completed    int64
	Failed       int64
	Panicked     int64
	MeanDuration time.Duration
}

func (s *scheduler) Stats() Stats {
	return Stats{
		Submitted:    s.submitted.Count(),
		Completed:    s.completed.Count(),
		Failed:       s.failed.Count(),
		Panicked:     s.panicked.Count(),
		MeanDuration: time.Duration(s.durations.Mean()),
	}
}
