package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/metrics"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Route groups whose store is nil in cfg are not registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog())
	if cfg.MetricsEnabled {
		router.Use(Metrics())
	}

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api")

	// Members
	if cfg.Auth != nil && cfg.Users != nil {
		users := NewUsersController(cfg.Auth, cfg.Users, cfg.Library)
		api.POST("/users", users.Register)
		api.POST("/users/login", users.Login)
		api.POST("/users/reset-password", users.ResetPassword)
		api.GET("/users", users.ListUsers)
		api.GET("/users/:id", users.GetUser)
		api.PATCH("/users/:id", users.UpdateUser)
		api.DELETE("/users/:id", users.DeleteUser)
		if cfg.Library != nil {
			api.GET("/users/:id/profile", users.Profile)
		}
	}

	if cfg.Friends != nil {
		friends := NewFriendsController(cfg.Friends)
		api.GET("/users/:id/friends", friends.ListFriends)
		api.POST("/users/:id/friends", friends.AddFriend)
		api.GET("/users/:id/friends/:friendId", friends.CheckFriendship)
		api.DELETE("/users/:id/friends/:friendId", friends.RemoveFriend)
	}

	// Catalog
	if cfg.Catalog != nil {
		catalog := NewCatalogController(cfg.Catalog)
		api.POST("/catalog", catalog.AddMaterial)
		api.GET("/catalog", catalog.ListCatalog)
		api.GET("/catalog/search", catalog.Search)
		api.GET("/catalog/:id", catalog.GetMaterial)
		api.GET("/catalog/:id/status", catalog.GetStatus)
		api.DELETE("/catalog/:id", catalog.RemoveMaterial)
	}

	// Loans
	if cfg.Loans != nil && cfg.Library != nil {
		loans := NewLoansController(cfg.Loans, cfg.Library)
		api.POST("/loans", loans.Borrow)
		api.GET("/loans/days", loans.LoanDays)
		api.GET("/loans/overdue", loans.ListOverdue)
		api.GET("/loans/:id", loans.GetLoan)
		api.POST("/loans/:id/return", loans.ReturnLoan)
		api.POST("/catalog/:id/return", loans.ReturnMaterial)
		api.GET("/catalog/:id/loan", loans.OpenLoan)
		api.GET("/users/:id/loans", loans.ListUserLoans)
	}

	if cfg.Reservations != nil {
		reservations := NewReservationsController(cfg.Reservations)
		api.POST("/reservations", reservations.Reserve)
		api.GET("/reservations/:id", reservations.GetReservation)
		api.DELETE("/reservations/:id", reservations.Cancel)
		api.GET("/users/:id/reservations", reservations.ListUserReservations)
	}

	if cfg.Favourites != nil {
		favourites := NewFavouritesController(cfg.Favourites)
		api.GET("/users/:id/favourites", favourites.ListFavourites)
		api.GET("/users/:id/favourites/:materialId", favourites.CheckFavourite)
		api.POST("/users/:id/favourites/:materialId", favourites.AddFavourite)
		api.DELETE("/users/:id/favourites/:materialId", favourites.RemoveFavourite)
	}

	// Ratings and reviews
	if cfg.Ratings != nil && cfg.Reviews != nil {
		ratings := NewRatingsController(cfg.Ratings, cfg.Reviews, cfg.Library)
		api.POST("/catalog/:id/ratings", ratings.Rate)
		api.PUT("/catalog/:id/ratings", ratings.UpdateRating)
		api.DELETE("/catalog/:id/ratings", ratings.RemoveRating)
		api.GET("/catalog/:id/ratings", ratings.GetRating)
		api.GET("/catalog/:id/rating", ratings.AverageRating)
		api.POST("/catalog/:id/reviews", ratings.WriteReview)
		api.PUT("/catalog/:id/reviews", ratings.EditReview)
		api.DELETE("/catalog/:id/reviews", ratings.RemoveReview)
		api.GET("/catalog/:id/reviews", ratings.ListMaterialReviews)
		api.GET("/users/:id/reviews", ratings.ListUserReviews)
		if cfg.Library != nil {
			api.POST("/catalog/:id/feedback", ratings.Feedback)
		}
	}

	if cfg.Ebooks != nil {
		ebooks := NewEbooksController(cfg.Ebooks)
		api.POST("/ebooks/:id/accesses", ebooks.RegisterAccess)
		api.GET("/users/:id/ebook-accesses", ebooks.ListUserAccesses)
	}

	if cfg.Recommender != nil {
		recommendations := NewRecommendationsController(cfg.Recommender)
		api.GET("/users/:id/recommendations", recommendations.Recommend)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Maintenance)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
		api.POST("/maintenance/run", tasksController.RunMaintenance)
	}

	return router
}
