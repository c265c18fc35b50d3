// Package reservations queues users for materials.
//
// New reservations are always pending. A material with at least one pending
// reservation is reserved unless it is on loan.
package reservations

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/biblioteca/internal/entities"
)

// Repository handles all reservation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reservations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// MakeReservation records a pending reservation and returns its id.
func (r *Repository) MakeReservation(userID, materialID uint) (uint, error) {
	reservation := &entities.Reservation{
		UserID:     userID,
		MaterialID: materialID,
		Status:     entities.ReservationPending,
	}
	if err := r.db.Create(reservation).Error; err != nil {
		return 0, fmt.Errorf("failed to make reservation: %w", err)
	}
	return reservation.ID, nil
}

// CancelReservation deletes a reservation by id.
func (r *Repository) CancelReservation(id uint) error {
	result := r.db.Delete(&entities.Reservation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to cancel reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrReservationNotFound
	}
	return nil
}

// GetReservation retrieves a reservation by ID.
func (r *Repository) GetReservation(id uint) (*entities.Reservation, error) {
	var reservations []entities.Reservation
	if err := r.db.Where("id = ?", id).Limit(1).Find(&reservations).Error; err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, entities.ErrReservationNotFound
	}
	return &reservations[0], nil
}

// ListUserReservations returns userID's reservations, newest first.
func (r *Repository) ListUserReservations(userID uint) ([]entities.ReservationWithTitle, error) {
	var reservations []entities.ReservationWithTitle
	err := r.db.Raw(`
		SELECT r.id, r.usuario_id, r.material_id, r.status_reserva, r.data_reserva, m.titulo
		FROM reserva r
		JOIN material_bibliografico m ON m.id = r.material_id
		WHERE r.usuario_id = ?
		ORDER BY r.data_reserva DESC, r.id DESC`, userID).
		Scan(&reservations).Error
	return reservations, err
}

// ExpirePending marks pending reservations made before cutoff as expired
// and returns how many changed.
func (r *Repository) ExpirePending(cutoff time.Time) (int64, error) {
	result := r.db.Model(&entities.Reservation{}).
		Where("status_reserva = ? AND data_reserva < ?", entities.ReservationPending, cutoff.UTC().Format(time.DateTime)).
		Update("status_reserva", entities.ReservationExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire reservations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
