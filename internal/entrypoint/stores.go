package entrypoint

import (
	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/database/catalog"
	"github.com/mrlokans/biblioteca/internal/database/ebooks"
	"github.com/mrlokans/biblioteca/internal/database/favourites"
	"github.com/mrlokans/biblioteca/internal/database/friendships"
	"github.com/mrlokans/biblioteca/internal/database/loans"
	"github.com/mrlokans/biblioteca/internal/database/ratings"
	"github.com/mrlokans/biblioteca/internal/database/reservations"
	"github.com/mrlokans/biblioteca/internal/database/reviews"
	"github.com/mrlokans/biblioteca/internal/database/users"
	http_controllers "github.com/mrlokans/biblioteca/internal/http"
	"github.com/mrlokans/biblioteca/internal/logging"
	"github.com/mrlokans/biblioteca/internal/metrics"
	"github.com/mrlokans/biblioteca/internal/recommend"
	"github.com/mrlokans/biblioteca/internal/services"
)

// Stores holds every repository and service built over one database.
type Stores struct {
	Users        *users.Repository
	Friends      *friendships.Repository
	Catalog      *catalog.Repository
	Loans        *loans.Repository
	Reservations *reservations.Repository
	Favourites   *favourites.Repository
	Ratings      *ratings.Repository
	Reviews      *reviews.Repository
	Ebooks       *ebooks.Repository
	Auth         *auth.Service
	Library      *services.LibraryService
	Recommender  *recommend.Recommender
}

// InitLogging applies the log settings of cfg to the global logger.
func InitLogging(cfg *config.Config) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// OpenDatabase opens and bootstraps the configured database with the
// zerolog statement logger and, when enabled, the metrics plugin.
func OpenDatabase(cfg *config.Config) (*database.Database, error) {
	opts := []database.Option{database.WithLogger(logging.NewGormLogger(cfg.Log.SQL))}
	if cfg.Metrics.Enabled {
		opts = append(opts, database.WithPlugins(metrics.NewGormPlugin()))
	}
	return database.NewDatabase(cfg.Database.Path, opts...)
}

// NewStores builds the repositories and services.
func NewStores(db *database.Database, cfg *config.Config) *Stores {
	s := &Stores{
		Users:        users.NewRepository(db.DB),
		Friends:      friendships.NewRepository(db.DB),
		Catalog:      catalog.NewRepository(db.DB),
		Loans:        loans.NewRepository(db.DB),
		Reservations: reservations.NewRepository(db.DB),
		Favourites:   favourites.NewRepository(db.DB),
		Ratings:      ratings.NewRepository(db.DB),
		Reviews:      reviews.NewRepository(db.DB),
		Ebooks:       ebooks.NewRepository(db.DB),
	}

	s.Auth = auth.NewService(s.Users, cfg.Auth)
	s.Library = services.NewLibraryService(services.LibraryStores{
		Catalog:    s.Catalog,
		Loans:      s.Loans,
		Ratings:    s.Ratings,
		Reviews:    s.Reviews,
		Users:      s.Users,
		Favourites: s.Favourites,
	}, cfg.Loans)
	s.Recommender = recommend.NewRecommender(db.DB,
		recommend.WithLimit(cfg.Recommend.Limit),
		recommend.WithTopCategories(cfg.Recommend.TopCategories),
	)
	return s
}

// RouterConfig exposes every store to the HTTP layer.
func (s *Stores) RouterConfig(db *database.Database, version string) http_controllers.RouterConfig {
	return http_controllers.RouterConfig{
		Database:     db,
		Version:      version,
		Users:        s.Users,
		Auth:         s.Auth,
		Friends:      s.Friends,
		Catalog:      s.Catalog,
		Loans:        s.Loans,
		Library:      s.Library,
		Reservations: s.Reservations,
		Favourites:   s.Favourites,
		Ratings:      s.Ratings,
		Reviews:      s.Reviews,
		Ebooks:       s.Ebooks,
		Recommender:  s.Recommender,
	}
}
