// Package server provides the HTTP server of the ProductForge API.
// It handles dependency wiring, routing, middleware configuration, and
// server lifecycle management including graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/productforge/backend/internal/auth"
	"github.com/productforge/backend/internal/config"
	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/database"
	"github.com/productforge/backend/internal/exporter"
	"github.com/productforge/backend/internal/handlers"
	"github.com/productforge/backend/internal/history"
	"github.com/productforge/backend/internal/humanizer"
	"github.com/productforge/backend/internal/repository"
	"github.com/productforge/backend/internal/service"
	"github.com/productforge/backend/internal/utils/ratelimit"
	"github.com/productforge/backend/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// GenericHandler serves health and version endpoints
	GenericHandler *handlers.GenericHandler

	// HumanizeHandler serves text humanization endpoints
	HumanizeHandler *handlers.HumanizeHandler

	// ExportHandler serves export and export history endpoints
	ExportHandler *handlers.ExportHandler
}

// Server represents the API server.
// It encapsulates all server components and handles server lifecycle management,
// including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access; nil when history is kept in memory
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// jwtService validates bearer tokens on /api routes
	jwtService *auth.JWTService

	// limiter throttles the export endpoint; nil when rate limiting is disabled
	limiter *ratelimit.Store

	// historyKV stores export history
	historyKV history.KV

	// httpServer is the underlying HTTP server
	httpServer *http.Server

	// stopMaintenance cancels background maintenance tasks
	stopMaintenance context.CancelFunc
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
//
// Components are created in dependency order:
// history storage → auth → services → handlers → routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupHistoryStore(); err != nil {
		return nil, fmt.Errorf("failed to set up history store: %w", err)
	}

	s.jwtService = auth.NewJWTService(&cfg.JWT)
	if !s.jwtService.Enabled() {
		log.Warn().Msg("JWT secret not configured, API routes are open")
	}

	s.setupRateLimiter()
	s.setupHandlers()

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupHistoryStore selects the export history backend.
// With the database backend it connects, runs migrations, and stores history
// in the key-value table; otherwise history lives in process memory.
func (s *Server) setupHistoryStore() error {
	if !s.Config.History.UsesDatabase() {
		s.historyKV = history.NewMemoryKV()
		log.Info().Msg("Export history kept in memory")
		return nil
	}

	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}
	s.Db = db

	// Run migrations to create tables if they don't exist
	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		db.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	s.historyKV = repository.NewKeyValueRepository(db)
	log.Info().Str("driver", db.Driver).Msg("Export history kept in database")
	return nil
}

func (s *Server) setupRateLimiter() {
	rl := s.Config.RateLimit
	if rl.Disabled {
		return
	}

	rate := ratelimit.Rate{RequestsPerSecond: rl.ExportPerSec, Burst: rl.ExportBurst}
	s.limiter = ratelimit.NewStore(rate)
	s.limiter.SetRate(constants.RateCategoryExport, rate)
}

// setupHandlers creates the engines, services, and handlers.
func (s *Server) setupHandlers() {
	var rnd humanizer.Rand
	if seed := s.Config.Humanizer.Seed; seed != 0 {
		rnd = humanizer.NewSeededRand(seed)
	}
	humanizeService := service.NewHumanizeService(humanizer.New(rnd), s.Config.Humanizer.DefaultProfile)

	book := history.NewBook(s.historyKV, s.Config.History.Capacity)
	exportService := service.NewExportService(exporter.NewDefaultEngine(), book)

	// A nil *database.Pool must not become a non-nil interface
	var db handlers.HealthChecker
	if s.Db != nil {
		db = s.Db
	}

	s.Handlers = &Handlers{
		GenericHandler:  handlers.NewGenericHandler(&s.Config.App, db),
		HumanizeHandler: handlers.NewHumanizeHandler(humanizeService),
		ExportHandler:   handlers.NewExportHandler(exportService),
	}
}

// Start starts the HTTP server and sets up signal handling for graceful shutdown.
// It blocks until the server fails or a shutdown signal is received.
//
// Returns:
//   - An error if the server fails to start or could not stop gracefully
func (s *Server) Start() error {
	// Create a channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	// Create a channel to listen for OS signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	s.SetupMaintenanceTasks()

	// Block until an OS signal or an error is received
	select {
	case err := <-serverErrors:
		s.stopBackground()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			// Shutdown the server immediately if graceful shutdown fails
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests,
// then stops maintenance tasks and closes the database connection.
//
// Parameters:
//   - ctx: Context with timeout for the shutdown operation
//
// Returns:
//   - An error if shutdown fails within the context timeout
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.stopBackground()

	if s.Db != nil {
		s.Db.Close()
		log.Info().Msg("Database connection closed")
	}

	return nil
}

// SetupMaintenanceTasks starts background maintenance: periodic eviction of
// idle rate limiters. It is a no-op when rate limiting is disabled or the
// tasks are already running.
func (s *Server) SetupMaintenanceTasks() {
	if s.limiter == nil || s.stopMaintenance != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopMaintenance = cancel

	go s.limiter.Run(ctx, s.Config.RateLimit.CleanupEvery)
}

func (s *Server) stopBackground() {
	if s.stopMaintenance != nil {
		s.stopMaintenance()
		s.stopMaintenance = nil
	}
}
