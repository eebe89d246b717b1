package scheduler

// Error codes for scheduler operations.
const (
	// CodeSchedulerStopped is returned when submitting to, or delaying on, a stopped scheduler.
	CodeSchedulerStopped = "SCHEDULER_STOPPED"

	// CodeTaskPanicked is returned when a task panics; the panic is recovered.
	CodeTaskPanicked = "TASK_PANICKED"

	// CodeShutdownTimeout is returned when in-flight tasks outlive the shutdown timeout.
	CodeShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// CodeDelayCancelled is returned when the context ends during a delay.
	CodeDelayCancelled = "DELAY_CANCELLED"

	// CodeInvalidTask is returned when a nil task is submitted.
	CodeInvalidTask = "INVALID_TASK"
)
