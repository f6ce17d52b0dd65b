package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when trying to submit a job to a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobQueueFull is returned when the job queue is full
	ErrJobQueueFull = errors.New("job queue is full")

	// ErrUnknownJobType is returned for job types the executor does not handle
	ErrUnknownJobType = errors.New("unknown job type")

	// ErrInvalidSchedule is returned when a cron schedule cannot be parsed
	ErrInvalidSchedule = errors.New("invalid cron schedule")
)
