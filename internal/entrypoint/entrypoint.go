package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/demo"
	http_controllers "github.com/mrlokans/biblioteca/internal/http"
	"github.com/mrlokans/biblioteca/internal/logging"
	"github.com/mrlokans/biblioteca/internal/scheduler"
	"github.com/mrlokans/biblioteca/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server so no task outlives the database.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown")
	}

	logging.Info().Msg("Server exiting")
}

// Run wires the database, stores, background tasks and HTTP router, then
// serves until interrupted.
func Run(cfg *config.Config, version string) {
	InitLogging(cfg)
	logging.Info().Str("version", version).Msg("Starting Biblioteca")

	db, err := OpenDatabase(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	stores := NewStores(db, cfg)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromSettings(cfg.Tasks))
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewScanOverdueLoansQueue(stores.Loans),
			tasks.NewExpireReservationsQueue(stores.Reservations),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Maintenance)
		if err := maintenance.Start(taskCtx); err != nil {
			logging.Error().Err(err).Msg("Failed to start maintenance scheduler")
		}
	} else {
		logging.Info().Msg("Task queue disabled, maintenance will not run")
	}

	routerCfg := stores.RouterConfig(db, version)
	routerCfg.MetricsEnabled = cfg.Metrics.Enabled
	if cfg.Demo.Enabled {
		logging.Info().Msg("Demo mode enabled - write operations will be blocked")
		routerCfg.DemoMiddleware = demo.NewMiddleware(true)
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
		routerCfg.Maintenance = maintenance
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
