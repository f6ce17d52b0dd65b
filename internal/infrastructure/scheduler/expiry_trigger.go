package scheduler

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExpiryTriggerConfig holds configuration for the expiry sweep trigger
type ExpiryTriggerConfig struct {
	// SweepHour and SweepMinute set the daily sweep time (24h clock)
	SweepHour   int
	SweepMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultExpiryTriggerConfig returns default expiry trigger configuration
func DefaultExpiryTriggerConfig() ExpiryTriggerConfig {
	return ExpiryTriggerConfig{
		SweepHour:     2, // 2am
		SweepMinute:   0,
		CheckInterval: time.Minute,
	}
}

// ParseCronSchedule extracts hour and minute from a daily cron expression
// of the form "minute hour * * *". An empty expression falls back to 2am.
func ParseCronSchedule(expr string) (hour, minute int, err error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return 2, 0, nil
	}
	if len(fields) != 5 {
		return 0, 0, ErrInvalidSchedule
	}

	minute, err = strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidSchedule
	}
	hour, err = strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidSchedule
	}
	return hour, minute, nil
}

// ExpiryTrigger submits a lot expiry sweep job once per day
type ExpiryTrigger struct {
	config    ExpiryTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Track which date we last ran for
}

// NewExpiryTrigger creates a new expiry trigger
func NewExpiryTrigger(config ExpiryTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *ExpiryTrigger {
	return &ExpiryTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the expiry trigger
func (c *ExpiryTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Expiry trigger started",
		zap.Int("sweep_hour", c.config.SweepHour),
		zap.Int("sweep_minute", c.config.SweepMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the expiry trigger
func (c *ExpiryTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Expiry trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop checks periodically if it's time to run the daily sweep
func (c *ExpiryTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger()
		}
	}
}

// checkAndTrigger submits the sweep when the configured time is reached
func (c *ExpiryTrigger) checkAndTrigger() {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	// Skip if we already ran today
	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if now.Hour() != c.config.SweepHour || now.Minute() != c.config.SweepMinute {
		return
	}

	c.mu.Lock()
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.logger.Info("Triggering daily lot expiry sweep")
	if err := c.scheduler.ScheduleExpirySweep(now); err != nil {
		c.logger.Error("Failed to schedule lot expiry sweep", zap.Error(err))
	}
}

// TriggerManualSweep allows running the sweep outside the daily schedule
func (c *ExpiryTrigger) TriggerManualSweep(referenceTime time.Time) error {
	return c.scheduler.ScheduleExpirySweep(referenceTime)
}
