package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/logging"
)

// LibraryService implements the desk flows that span more than one store.
type LibraryService struct {
	catalog    MaterialStatusReader
	loans      LoanStore
	ratings    RatingStore
	reviews    ReviewStore
	users      UserReader
	favourites FavouriteLister
	config     config.Loans
	now        func() time.Time
}

// LibraryStores groups the stores a LibraryService depends on.
type LibraryStores struct {
	Catalog    MaterialStatusReader
	Loans      LoanStore
	Ratings    RatingStore
	Reviews    ReviewStore
	Users      UserReader
	Favourites FavouriteLister
}

// NewLibraryService creates a library service. Missing loan settings fall
// back to the package defaults.
func NewLibraryService(stores LibraryStores, cfg config.Loans) *LibraryService {
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = config.DefaultLoanDays
	}
	if len(cfg.AllowedDays) == 0 {
		cfg.AllowedDays = config.DefaultLoanAllowedDays
	}
	return &LibraryService{
		catalog:    stores.Catalog,
		loans:      stores.Loans,
		ratings:    stores.Ratings,
		reviews:    stores.Reviews,
		users:      stores.Users,
		favourites: stores.Favourites,
		config:     cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AllowedLoanDays returns the loan durations a borrower may choose.
func (s *LibraryService) AllowedLoanDays() []int {
	return slices.Clone(s.config.AllowedDays)
}

// BorrowMaterial lends an available material for days days. Zero days uses
// the default duration. Loaned or reserved materials fail with
// entities.ErrMaterialUnavailable.
func (s *LibraryService) BorrowMaterial(userID, materialID uint, days int) (*entities.Loan, error) {
	if days == 0 {
		days = s.config.DefaultDays
	}
	if !slices.Contains(s.config.AllowedDays, days) {
		return nil, entities.ErrInvalidLoanDuration
	}

	status, err := s.catalog.GetMaterialStatus(materialID)
	if err != nil {
		return nil, err
	}
	if status != entities.StatusAvailable {
		return nil, fmt.Errorf("%w: %s", entities.ErrMaterialUnavailable, status)
	}

	expected := s.now().AddDate(0, 0, days)
	loanID, err := s.loans.RegisterLoan(userID, materialID, expected)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Uint("user_id", userID).
		Uint("material_id", materialID).
		Uint("loan_id", loanID).
		Int("days", days).
		Msg("Material borrowed")

	return s.loans.GetLoan(loanID)
}

// ReturnMaterial closes the open loan of a material, whoever holds it.
// A material that is not on loan yields entities.ErrLoanNotFound.
func (s *LibraryService) ReturnMaterial(materialID uint) error {
	open, err := s.loans.FindOpenLoanForMaterial(materialID)
	if err != nil {
		return err
	}
	if err := s.loans.RegisterReturn(open.ID); err != nil {
		return err
	}

	logging.Info().
		Uint("user_id", open.UserID).
		Uint("material_id", materialID).
		Uint("loan_id", open.ID).
		Msg("Material returned")
	return nil
}

// RateAndReview records a rating and, when text is not empty, a review.
// Existing entries by the same user are replaced.
func (s *LibraryService) RateAndReview(userID, materialID uint, rating float64, text string) error {
	err := s.ratings.RateMaterial(userID, materialID, rating)
	if errors.Is(err, entities.ErrRatingExists) {
		err = s.ratings.UpdateRating(userID, materialID, rating)
	}
	if err != nil {
		return err
	}

	if text == "" {
		return nil
	}

	err = s.reviews.WriteReview(userID, materialID, text)
	if errors.Is(err, entities.ErrReviewExists) {
		err = s.reviews.EditReview(userID, materialID, text)
	}
	return err
}

// Profile loads a member with their loans, reviews and favourites.
func (s *LibraryService) Profile(userID uint) (*Profile, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	loans, err := s.loans.ListUserLoans(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	reviews, err := s.reviews.ListUserReviews(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	favourites, err := s.favourites.ListUserFavourites(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}

	return &Profile{
		User:       user,
		Loans:      loans,
		Reviews:    reviews,
		Favourites: favourites,
	}, nil
}
