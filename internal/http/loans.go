package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LoansController handles lending and returning.
type LoansController struct {
	loans   LoanStore
	library LibraryService
	now     func() time.Time
}

func NewLoansController(loans LoanStore, library LibraryService) *LoansController {
	return &LoansController{loans: loans, library: library, now: time.Now}
}

type borrowRequest struct {
	UserID     uint `json:"user_id" validate:"required"`
	MaterialID uint `json:"material_id" validate:"required"`
	// Days of 0 picks the default loan period.
	Days int `json:"days" validate:"gte=0"`
}

// Borrow lends an available material.
// POST /api/loans
func (lc *LoansController) Borrow(c *gin.Context) {
	var req borrowRequest
	if !bindJSON(c, &req) {
		return
	}

	loan, err := lc.library.BorrowMaterial(req.UserID, req.MaterialID, req.Days)
	if err != nil {
		respondStoreError(c, err, "borrow material")
		return
	}
	respondCreated(c, loan)
}

// LoanDays lists the loan periods a member may choose.
// GET /api/loans/days
func (lc *LoansController) LoanDays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": lc.library.AllowedLoanDays()})
}

// GetLoan returns one loan.
// GET /api/loans/:id
func (lc *LoansController) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := lc.loans.GetLoan(id)
	if err != nil {
		respondStoreError(c, err, "get loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ReturnLoan closes a loan by id.
// POST /api/loans/:id/return
func (lc *LoansController) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.loans.RegisterReturn(id); err != nil {
		respondStoreError(c, err, "register return")
		return
	}
	respondSuccess(c, "material returned")
}

// ReturnMaterial closes whatever loan is open for a material.
// POST /api/catalog/:id/return
func (lc *LoansController) ReturnMaterial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.library.ReturnMaterial(id); err != nil {
		respondStoreError(c, err, "return material")
		return
	}
	respondSuccess(c, "material returned")
}

// OpenLoan returns the open loan of a material. With ?user_id= it only
// matches that member's loan.
// GET /api/catalog/:id/loan
func (lc *LoansController) OpenLoan(c *gin.Context) {
	materialID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if c.Query("user_id") != "" {
		userID, ok := parseQueryID(c, "user_id")
		if !ok {
			return
		}
		loan, err := lc.loans.FindOpenLoan(userID, materialID)
		if err != nil {
			respondStoreError(c, err, "find open loan")
			return
		}
		c.JSON(http.StatusOK, loan)
		return
	}

	loan, err := lc.loans.FindOpenLoanForMaterial(materialID)
	if err != nil {
		respondStoreError(c, err, "find open loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ListUserLoans returns a member's loans, newest first.
// GET /api/users/:id/loans
func (lc *LoansController) ListUserLoans(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loans, err := lc.loans.ListUserLoans(userID)
	if err != nil {
		respondInternalError(c, err, "list user loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans, "total": len(loans)})
}

// ListOverdue returns open loans past their expected return.
// GET /api/loans/overdue
func (lc *LoansController) ListOverdue(c *gin.Context) {
	loans, err := lc.loans.ListOverdue(lc.now())
	if err != nil {
		respondInternalError(c, err, "list overdue loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans, "total": len(loans)})
}
