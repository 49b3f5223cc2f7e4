package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/di"
	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/worker"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/middleware"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/router"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/server"
	"github.com/Grom-Hilbert/lyra-sub002/internal/interface/validator"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/config"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger setup
	loggerConfig := logger.DefaultConfig()
	loggerConfig.Level = cfg.Logger.Level
	loggerConfig.Format = cfg.Logger.Format
	if err := logger.Setup(loggerConfig); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Initialize UseCases and Handlers
	container.InitAuthzUseCases()
	handlers := di.NewHandlers(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	srv := server.NewServer(serverConfig)
	e := srv.Echo()

	// Setup validator and error handler
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.CORS())

	// Setup Router
	router.NewRouter(e, handlers).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	workerMgr.Register(worker.NewAssignmentSweepJob(func(ctx context.Context) (int64, int64, error) {
		out, err := container.Authz.SweepExpired.Execute(ctx)
		if err != nil {
			return 0, 0, err
		}
		return out.Expired, out.Activated, nil
	}, cfg.Sweep.Interval))
	if container.PgClient != nil {
		workerMgr.Register(worker.NewHealthCheckJob(func(ctx context.Context) error {
			return container.PgClient.Pool().Ping(ctx)
		}))
	}
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "port", cfg.Server.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config().ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
