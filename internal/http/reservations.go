package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReservationsController struct {
	store ReservationStore
}

func NewReservationsController(store ReservationStore) *ReservationsController {
	return &ReservationsController{store: store}
}

type reservationRequest struct {
	UserID     uint `json:"user_id" validate:"required"`
	MaterialID uint `json:"material_id" validate:"required"`
}

// Reserve creates a pending reservation.
// POST /api/reservations
func (rc *ReservationsController) Reserve(c *gin.Context) {
	var req reservationRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := rc.store.MakeReservation(req.UserID, req.MaterialID)
	if err != nil {
		respondStoreError(c, err, "make reservation")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// GET /api/reservations/:id
func (rc *ReservationsController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.store.GetReservation(id)
	if err != nil {
		respondStoreError(c, err, "get reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DELETE /api/reservations/:id
func (rc *ReservationsController) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.store.CancelReservation(id); err != nil {
		respondStoreError(c, err, "cancel reservation")
		return
	}
	respondSuccess(c, "reservation cancelled")
}

// GET /api/users/:id/reservations
func (rc *ReservationsController) ListUserReservations(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservations, err := rc.store.ListUserReservations(userID)
	if err != nil {
		respondInternalError(c, err, "list reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "total": len(reservations)})
}
