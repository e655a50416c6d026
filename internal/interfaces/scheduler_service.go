package interfaces

import "context"

// SchedulerService manages cron-based background maintenance: the
// stale-job sweep and expired-job retention cleanup.
type SchedulerService interface {
	// Start the scheduler
	Start() error

	// Stop the scheduler
	Stop() error

	// IsRunning returns true if scheduler is active
	IsRunning() bool

	// RunMaintenanceNow triggers one sweep-and-cleanup pass immediately
	RunMaintenanceNow(ctx context.Context) error
}
