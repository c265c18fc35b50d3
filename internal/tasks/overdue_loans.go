package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/logging"
	"github.com/mrlokans/biblioteca/internal/metrics"
)

const QueueScanOverdueLoans = "scan_overdue_loans"

// OverdueLister lists open loans past their expected return.
type OverdueLister interface {
	ListOverdue(now time.Time) ([]entities.OverdueLoan, error)
}

// ScanOverdueLoansTask logs every overdue loan and refreshes the overdue
// gauge.
type ScanOverdueLoansTask struct{}

// Config returns the queue configuration for overdue scans.
func (t ScanOverdueLoansTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueScanOverdueLoans,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ScanOverdueLoansProcessor creates a processor function for ScanOverdueLoansTask.
func ScanOverdueLoansProcessor(loans OverdueLister, now func() time.Time) backlite.QueueProcessor[ScanOverdueLoansTask] {
	return func(ctx context.Context, task ScanOverdueLoansTask) error {
		err := scanOverdue(loans, now())
		metrics.RecordTask(QueueScanOverdueLoans, err)
		return err
	}
}

func scanOverdue(loans OverdueLister, now time.Time) error {
	if loans == nil {
		return fmt.Errorf("loan store not configured")
	}

	overdue, err := loans.ListOverdue(now)
	if err != nil {
		return fmt.Errorf("list overdue loans: %w", err)
	}

	for _, loan := range overdue {
		logging.Warn().
			Uint("loan_id", loan.ID).
			Uint("user_id", loan.UserID).
			Str("user", loan.UserName).
			Str("email", loan.UserEmail).
			Str("title", loan.Title).
			Time("due", loan.ExpectedReturnAt).
			Dur("late", now.Sub(loan.ExpectedReturnAt)).
			Msg("Loan overdue")
	}

	metrics.LoansOverdue.Set(float64(len(overdue)))
	logging.Info().Int("count", len(overdue)).Msg("Overdue loan scan finished")
	return nil
}

// NewScanOverdueLoansQueue creates a backlite queue for overdue scans.
func NewScanOverdueLoansQueue(loans OverdueLister) backlite.Queue {
	return backlite.NewQueue(ScanOverdueLoansProcessor(loans, func() time.Time { return time.Now().UTC() }))
}
