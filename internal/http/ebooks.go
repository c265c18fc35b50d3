package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type EbooksController struct {
	store EbookStore
}

func NewEbooksController(store EbookStore) *EbooksController {
	return &EbooksController{store: store}
}

type accessRequest struct {
	UserID   uint `json:"user_id" validate:"required"`
	Duration *int `json:"duration" validate:"omitempty,gte=0"`
}

// RegisterAccess logs a member opening an e-book.
// POST /api/ebooks/:id/accesses
func (ec *EbooksController) RegisterAccess(c *gin.Context) {
	ebookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req accessRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := ec.store.RegisterAccess(req.UserID, ebookID, req.Duration)
	if err != nil {
		respondStoreError(c, err, "register e-book access")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// GET /api/users/:id/ebook-accesses
func (ec *EbooksController) ListUserAccesses(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	accesses, err := ec.store.ListUserAccesses(userID)
	if err != nil {
		respondInternalError(c, err, "list e-book accesses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accesses": accesses, "total": len(accesses)})
}
