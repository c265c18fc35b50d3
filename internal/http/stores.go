package http

import (
	"time"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/services"
)

// Each controller depends only on the methods it calls. The concrete
// implementations live under internal/database, internal/auth,
// internal/services and internal/recommend.

// UserStore provides member reads and deletes.
type UserStore interface {
	GetUserByID(id uint) (*entities.User, error)
	ListUsers() ([]entities.UserSummary, error)
	DeleteUser(id uint) error
}

// AuthService handles credentials and profile changes.
type AuthService interface {
	Register(req auth.RegisterRequest) (*entities.User, error)
	Login(email, password string) (*entities.User, error)
	ResetPassword(email, newPassword string) error
	ChangeProfile(userID uint, upd auth.ProfileUpdate) (*entities.User, error)
}

// FriendStore manages friendships.
type FriendStore interface {
	AddFriend(userID, friendID uint) error
	AreFriends(userID, friendID uint) (bool, error)
	RemoveFriend(userID, friendID uint) error
	ListFriends(userID uint) ([]entities.UserSummary, error)
}

// CatalogStore manages bibliographic materials.
type CatalogStore interface {
	AddMaterial(m entities.Material) (uint, error)
	ListCatalog(category entities.MaterialKind) ([]entities.CatalogEntry, error)
	ListCatalogWithStatus() ([]entities.CatalogEntry, error)
	GetMaterialByID(id uint) (*entities.CatalogEntry, error)
	GetMaterialStatus(id uint) (entities.MaterialStatus, error)
	SearchByTitle(substring string) ([]entities.MaterialSummary, error)
	SearchByTitleWithStatus(substring string) ([]entities.MaterialSummary, error)
	RemoveMaterial(id uint) error
}

// LoanStore reads and closes loans.
type LoanStore interface {
	RegisterReturn(loanID uint) error
	GetLoan(id uint) (*entities.Loan, error)
	FindOpenLoan(userID, materialID uint) (*entities.OpenLoan, error)
	FindOpenLoanForMaterial(materialID uint) (*entities.OpenLoan, error)
	ListUserLoans(userID uint) ([]entities.LoanWithTitle, error)
	ListOverdue(now time.Time) ([]entities.OverdueLoan, error)
}

// LibraryService runs the flows that check availability first.
type LibraryService interface {
	BorrowMaterial(userID, materialID uint, days int) (*entities.Loan, error)
	ReturnMaterial(materialID uint) error
	RateAndReview(userID, materialID uint, rating float64, text string) error
	Profile(userID uint) (*services.Profile, error)
	AllowedLoanDays() []int
}

// ReservationStore manages reservations.
type ReservationStore interface {
	MakeReservation(userID, materialID uint) (uint, error)
	CancelReservation(id uint) error
	GetReservation(id uint) (*entities.Reservation, error)
	ListUserReservations(userID uint) ([]entities.ReservationWithTitle, error)
}

// FavouritesStore manages favourites.
type FavouritesStore interface {
	AddFavourite(userID, materialID uint) error
	RemoveFavourite(userID, materialID uint) error
	IsFavourite(userID, materialID uint) (bool, error)
	ListUserFavourites(userID uint) ([]entities.FavouriteMaterial, error)
}

// RatingStore manages ratings.
type RatingStore interface {
	RateMaterial(userID, materialID uint, value float64) error
	UpdateRating(userID, materialID uint, value float64) error
	RemoveRating(userID, materialID uint) error
	GetRating(userID, materialID uint) (*entities.Rating, error)
	AverageRating(materialID uint) (*float64, error)
}

// ReviewStore manages written reviews.
type ReviewStore interface {
	WriteReview(userID, materialID uint, text string) error
	EditReview(userID, materialID uint, text string) error
	RemoveReview(userID, materialID uint) error
	ListMaterialReviews(materialID uint) ([]entities.MaterialReview, error)
	ListUserReviews(userID uint) ([]entities.UserReview, error)
}

// EbookStore logs e-book access.
type EbookStore interface {
	RegisterAccess(userID, ebookID uint, duration *int) (uint, error)
	ListUserAccesses(userID uint) ([]entities.EbookAccessWithTitle, error)
}

// Recommender suggests materials.
type Recommender interface {
	Recommend(userID uint, limit int) ([]entities.MaterialSummary, error)
}

// MaintenanceRunner enqueues the maintenance tasks on demand.
type MaintenanceRunner interface {
	RunNow() error
}
