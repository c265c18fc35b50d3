package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/biblioteca/internal/database/dbtest"
	"github.com/mrlokans/biblioteca/internal/database/loans"
	"github.com/mrlokans/biblioteca/internal/database/reservations"
	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/metrics"
)

type fakeOverdue struct {
	loans []entities.OverdueLoan
	err   error
	asked time.Time
}

func (f *fakeOverdue) ListOverdue(now time.Time) ([]entities.OverdueLoan, error) {
	f.asked = now
	return f.loans, f.err
}

type fakeExpirer struct {
	cutoff time.Time
	calls  int
	n      int64
	err    error
}

func (f *fakeExpirer) ExpirePending(cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.n, f.err
}

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestScanOverdueLoansProcessor(t *testing.T) {
	store := &fakeOverdue{loans: []entities.OverdueLoan{
		{Loan: entities.Loan{ID: 1, ExpectedReturnAt: fixedNow.Add(-48 * time.Hour)}, Title: "O Hobbit", UserName: "Maria"},
		{Loan: entities.Loan{ID: 2, ExpectedReturnAt: fixedNow.Add(-time.Hour)}, Title: "Duna", UserName: "Pedro"},
	}}

	err := ScanOverdueLoansProcessor(store, clock)(context.Background(), ScanOverdueLoansTask{})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, store.asked)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.LoansOverdue))
}

func TestScanOverdueLoansProcessor_Errors(t *testing.T) {
	err := ScanOverdueLoansProcessor(&fakeOverdue{err: errors.New("db closed")}, clock)(context.Background(), ScanOverdueLoansTask{})
	assert.ErrorContains(t, err, "db closed")

	err = ScanOverdueLoansProcessor(nil, clock)(context.Background(), ScanOverdueLoansTask{})
	assert.Error(t, err)
}

func TestExpireReservationsProcessor(t *testing.T) {
	t.Run("expires older than window", func(t *testing.T) {
		store := &fakeExpirer{n: 3}
		before := testutil.ToFloat64(metrics.ReservationsExpired)

		err := ExpireReservationsProcessor(store, clock)(context.Background(), ExpireReservationsTask{OlderThan: 24 * time.Hour})
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(-24*time.Hour), store.cutoff)
		assert.Equal(t, before+3, testutil.ToFloat64(metrics.ReservationsExpired))
	})

	t.Run("zero window is disabled", func(t *testing.T) {
		store := &fakeExpirer{}
		err := ExpireReservationsProcessor(store, clock)(context.Background(), ExpireReservationsTask{})
		require.NoError(t, err)
		assert.Zero(t, store.calls)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &fakeExpirer{err: errors.New("locked")}
		err := ExpireReservationsProcessor(store, clock)(context.Background(), ExpireReservationsTask{OlderThan: time.Hour})
		assert.ErrorContains(t, err, "locked")
	})
}

func TestMaintenanceQueues_EndToEnd(t *testing.T) {
	db := dbtest.Open(t, "tasks")
	user := dbtest.InsertUser(t, db, "Maria", "maria@email.com")
	book := dbtest.InsertMaterial(t, db, "O Hobbit", "livro")

	reservationRepo := reservations.NewRepository(db)
	_, err := reservationRepo.MakeReservation(user, book)
	require.NoError(t, err)
	require.NoError(t, db.Exec("UPDATE reserva SET data_reserva = '2000-01-01 00:00:00'").Error)

	cfg := DefaultConfig()
	cfg.Workers = 1
	client, err := NewClient(filepath.Join(t.TempDir(), "biblioteca.db"), cfg)
	require.NoError(t, err)
	defer client.Close()

	client.Register(
		NewScanOverdueLoansQueue(loans.NewRepository(db)),
		NewExpireReservationsQueue(reservationRepo),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	_, err = client.Add(ExpireReservationsTask{OlderThan: time.Hour}, ScanOverdueLoansTask{}).Save()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		r, err := reservationRepo.GetReservation(1)
		return err == nil && r.Status == entities.ReservationExpired
	}, 5*time.Second, 50*time.Millisecond)
}
