// Package scheduler runs periodic library maintenance on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/logging"
	"github.com/mrlokans/biblioteca/internal/tasks"
)

// TaskEnqueuer saves tasks for background processing.
type TaskEnqueuer interface {
	Enqueue(tasks ...backlite.Task) error
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// MaintenanceScheduler enqueues the overdue loan scan and reservation
// expiry on a schedule. The work itself runs in the task queue.
type MaintenanceScheduler struct {
	enqueuer TaskEnqueuer
	config   config.Maintenance

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(enqueuer TaskEnqueuer, cfg config.Maintenance) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		enqueuer: enqueuer,
		config:   cfg,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if maintenance is enabled
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		logging.Info().Msg("Maintenance scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.RunNow(); err != nil {
			logging.Err(err).Msg("Maintenance scheduler: failed to enqueue tasks")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	logging.Info().
		Str("schedule", s.config.Schedule).
		Dur("reservation_expiry", s.config.Expiry).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("Maintenance scheduler: started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	logging.Info().Msg("Maintenance scheduler: stopped")
}

// RunNow enqueues both maintenance tasks immediately.
func (s *MaintenanceScheduler) RunNow() error {
	if s.enqueuer == nil {
		return fmt.Errorf("task queue not configured")
	}
	return s.enqueuer.Enqueue(
		tasks.ScanOverdueLoansTask{},
		tasks.ExpireReservationsTask{OlderThan: s.config.Expiry},
	)
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next run will occur
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	t := s.cron.Entry(s.entryID).Next
	return &t
}
