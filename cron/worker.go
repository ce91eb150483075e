package cron

import (
	"context"
	"fmt"
	"time"

	"kilnbot/services/reminder"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartReminderScheduler runs the reminder scan on a fixed interval in the
// background and returns the scheduler for shutdown. No jitter, no catch-up:
// each tick evaluates the windows against the current clock only.
func StartReminderScheduler(scanner *reminder.Scanner, interval time.Duration, logger *zap.Logger) (*robfig.Cron, error) {
	c := robfig.New()
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := c.AddFunc(spec, func() {
		scanner.Scan(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder scan: %w", err)
	}
	c.Start()
	logger.Info("reminder scheduler started", zap.Duration("interval", interval))
	return c, nil
}
