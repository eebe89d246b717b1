package scheduler

import "context"

// Job tracks one submitted task.
type Job struct {
	name string
	done chan struct{}
	err  error
}

func newJob(name string) *Job {
	return &Job{name: name, done: make(chan struct{})}
}

func (j *Job) finish(err error) {
	j.err = err
	close(j.done)
}

// Name returns the name the task was submitted with.
func (j *Job) Name() string {
	return j.name
}

// Done is closed when the task has returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err returns the task result. It is only meaningful after Done is closed.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

// Wait blocks until the task returns or ctx is done.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
