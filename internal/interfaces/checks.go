package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database/catalog"
	"github.com/mrlokans/biblioteca/internal/database/ebooks"
	"github.com/mrlokans/biblioteca/internal/database/favourites"
	"github.com/mrlokans/biblioteca/internal/database/friendships"
	"github.com/mrlokans/biblioteca/internal/database/loans"
	"github.com/mrlokans/biblioteca/internal/database/ratings"
	"github.com/mrlokans/biblioteca/internal/database/reservations"
	"github.com/mrlokans/biblioteca/internal/database/reviews"
	"github.com/mrlokans/biblioteca/internal/database/users"
	"github.com/mrlokans/biblioteca/internal/http"
	"github.com/mrlokans/biblioteca/internal/recommend"
	"github.com/mrlokans/biblioteca/internal/scheduler"
	"github.com/mrlokans/biblioteca/internal/services"
	"github.com/mrlokans/biblioteca/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.UserStore = (*users.Repository)(nil)
var _ auth.UserStore = (*users.Repository)(nil)
var _ services.UserReader = (*users.Repository)(nil)

var _ http.FriendStore = (*friendships.Repository)(nil)

var _ http.CatalogStore = (*catalog.Repository)(nil)
var _ services.MaterialStatusReader = (*catalog.Repository)(nil)

var _ http.LoanStore = (*loans.Repository)(nil)
var _ services.LoanStore = (*loans.Repository)(nil)
var _ tasks.OverdueLister = (*loans.Repository)(nil)

var _ http.ReservationStore = (*reservations.Repository)(nil)
var _ tasks.ReservationExpirer = (*reservations.Repository)(nil)

var _ http.FavouritesStore = (*favourites.Repository)(nil)
var _ services.FavouriteLister = (*favourites.Repository)(nil)

var _ http.RatingStore = (*ratings.Repository)(nil)
var _ services.RatingStore = (*ratings.Repository)(nil)

var _ http.ReviewStore = (*reviews.Repository)(nil)
var _ services.ReviewStore = (*reviews.Repository)(nil)

var _ http.EbookStore = (*ebooks.Repository)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.AuthService = (*auth.Service)(nil)
var _ http.LibraryService = (*services.LibraryService)(nil)
var _ http.Recommender = (*recommend.Recommender)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
var _ http.MaintenanceRunner = (*scheduler.MaintenanceScheduler)(nil)
