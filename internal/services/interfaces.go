package services

import (
	"time"

	"github.com/mrlokans/biblioteca/internal/entities"
)

// MaterialStatusReader derives the availability of a material.
type MaterialStatusReader interface {
	GetMaterialStatus(id uint) (entities.MaterialStatus, error)
}

// LoanStore opens and closes loans.
type LoanStore interface {
	RegisterLoan(userID, materialID uint, expectedReturn time.Time) (uint, error)
	RegisterReturn(loanID uint) error
	GetLoan(id uint) (*entities.Loan, error)
	FindOpenLoanForMaterial(materialID uint) (*entities.OpenLoan, error)
	ListUserLoans(userID uint) ([]entities.LoanWithTitle, error)
}

// RatingStore writes one rating per user and material.
type RatingStore interface {
	RateMaterial(userID, materialID uint, value float64) error
	UpdateRating(userID, materialID uint, value float64) error
}

// ReviewStore writes one review per user and material.
type ReviewStore interface {
	WriteReview(userID, materialID uint, text string) error
	EditReview(userID, materialID uint, text string) error
	ListUserReviews(userID uint) ([]entities.UserReview, error)
}

// UserReader loads a single member.
type UserReader interface {
	GetUserByID(id uint) (*entities.User, error)
}

// FavouriteLister lists a member's favourites.
type FavouriteLister interface {
	ListUserFavourites(userID uint) ([]entities.FavouriteMaterial, error)
}

// Profile is everything shown on a member's page.
type Profile struct {
	User       *entities.User               `json:"user"`
	Loans      []entities.LoanWithTitle     `json:"loans"`
	Reviews    []entities.UserReview        `json:"reviews"`
	Favourites []entities.FavouriteMaterial `json:"favourites"`
}
