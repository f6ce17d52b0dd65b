package scheduler

import (
	"context"
	"time"

	stockapp "github.com/wasteworks/backend/internal/application/stock"
	"go.uber.org/zap"
)

// ExpirySweeper runs a lot expiry sweep anchored at the given time
type ExpirySweeper interface {
	Sweep(ctx context.Context, now time.Time) (*stockapp.SweepResult, error)
}

// SweepExecutor executes lot expiry sweep jobs
type SweepExecutor struct {
	sweeper ExpirySweeper
	logger  *zap.Logger
}

// NewSweepExecutor creates a new sweep executor
func NewSweepExecutor(sweeper ExpirySweeper, logger *zap.Logger) *SweepExecutor {
	return &SweepExecutor{
		sweeper: sweeper,
		logger:  logger,
	}
}

// Execute runs the job
func (e *SweepExecutor) Execute(ctx context.Context, job *Job) error {
	if job.Type != JobTypeLotExpirySweep {
		return ErrUnknownJobType
	}

	result, err := e.sweeper.Sweep(ctx, job.ReferenceTime)
	if err != nil {
		return err
	}

	e.logger.Info("Lot expiry sweep finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("lots_checked", result.LotsChecked),
		zap.Int("reminders_created", result.RemindersCreated),
	)
	return nil
}
