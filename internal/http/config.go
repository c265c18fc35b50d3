package http

import (
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/demo"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Nil stores leave their routes unregistered.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Version  string

	// Members
	Users   UserStore
	Auth    AuthService
	Friends FriendStore

	// Catalog and interactions
	Catalog      CatalogStore
	Loans        LoanStore
	Library      LibraryService
	Reservations ReservationStore
	Favourites   FavouritesStore
	Ratings      RatingStore
	Reviews      ReviewStore
	Ebooks       EbookStore
	Recommender  Recommender

	// Background tasks (optional)
	TaskQueue   TaskQueue
	Maintenance MaintenanceRunner

	// Expose /metrics
	MetricsEnabled bool

	// Read-only demo mode (optional)
	DemoMiddleware *demo.Middleware
}
