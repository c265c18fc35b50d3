package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/biblioteca/internal/logging"
	"github.com/mrlokans/biblioteca/internal/metrics"
)

const QueueExpireReservations = "expire_reservations"

// ReservationExpirer marks old pending reservations as expired.
type ReservationExpirer interface {
	ExpirePending(cutoff time.Time) (int64, error)
}

// ExpireReservationsTask expires pending reservations older than OlderThan.
// A zero OlderThan does nothing.
type ExpireReservationsTask struct {
	OlderThan time.Duration `json:"older_than"`
}

// Config returns the queue configuration for reservation expiry.
func (t ExpireReservationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueExpireReservations,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExpireReservationsProcessor creates a processor function for ExpireReservationsTask.
func ExpireReservationsProcessor(reservations ReservationExpirer, now func() time.Time) backlite.QueueProcessor[ExpireReservationsTask] {
	return func(ctx context.Context, task ExpireReservationsTask) error {
		err := expireReservations(reservations, now(), task.OlderThan)
		metrics.RecordTask(QueueExpireReservations, err)
		return err
	}
}

func expireReservations(reservations ReservationExpirer, now time.Time, olderThan time.Duration) error {
	if reservations == nil {
		return fmt.Errorf("reservation store not configured")
	}
	if olderThan <= 0 {
		logging.Debug().Msg("Reservation expiry disabled")
		return nil
	}

	cutoff := now.Add(-olderThan)
	expired, err := reservations.ExpirePending(cutoff)
	if err != nil {
		return fmt.Errorf("expire reservations: %w", err)
	}

	metrics.ReservationsExpired.Add(float64(expired))
	logging.Info().
		Int64("expired", expired).
		Time("cutoff", cutoff).
		Msg("Expired pending reservations")
	return nil
}

// NewExpireReservationsQueue creates a backlite queue for reservation expiry.
func NewExpireReservationsQueue(reservations ReservationExpirer) backlite.Queue {
	return backlite.NewQueue(ExpireReservationsProcessor(reservations, func() time.Time { return time.Now().UTC() }))
}
