package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline/investprofile/backend/internal/api"
	"github.com/ledgerline/investprofile/backend/internal/api/handlers"
	"github.com/ledgerline/investprofile/backend/internal/auth"
	"github.com/ledgerline/investprofile/backend/internal/flow"
	"github.com/ledgerline/investprofile/backend/internal/market"
	"github.com/ledgerline/investprofile/backend/internal/remote"
	"github.com/ledgerline/investprofile/backend/internal/scheduler"
	"github.com/ledgerline/investprofile/backend/internal/scheduler/jobs"
	"github.com/ledgerline/investprofile/backend/internal/service"
	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/config"
	"github.com/ledgerline/investprofile/backend/pkg/database"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
	"github.com/ledgerline/investprofile/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                          - Health check
  POST /api/v1/auth/login               - Authenticate
  POST /api/v1/auth/register            - Create account
  POST /api/v1/profile/questionnaire    - Submit questionnaire
  POST /api/v1/profile/analyze          - Run profile analysis
  GET  /api/v1/profile/analysis         - Stored analysis
  POST /api/v1/recommendations          - Build recommendations
  GET  /api/v1/recommendations          - Stored recommendations
  GET  /api/v1/flow/state               - Journey state
  POST /api/v1/flow/reset               - Clear progress
  POST /api/v1/flow/redo-questionnaire  - Reopen the questionnaire

Example:
  go run ./cmd/profiler api
  go run ./cmd/profiler api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== InvestProfile API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":       cfg.Port,
		"env":        cfg.Env,
		"local_mode": cfg.LocalMode,
	}).Info("Initializing API server")

	// 3. Pick the store backend: Redis, Postgres, in-memory.
	var store storage.Store
	var redisClient *redis.Client

	if cfg.Redis.Enabled {
		redisClient, err = redis.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()

		store = storage.NewRedisStore(redisClient)
		log.Info("Connected to Redis store")
	} else if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		store = storage.NewPostgresStore(db.Pool)
		log.Info("Connected to Postgres store")
	} else {
		store = storage.NewMemoryStore()
		log.Warn("No store backend configured, using in-memory store")
	}

	// 4. Analysis and recommendation sources
	var (
		analyzer      service.AnalysisSource
		selector      service.RecommendationSource
		authenticator auth.Authenticator
		catalogs      market.CatalogSource
	)

	if cfg.LocalMode {
		catalogs = market.NewStaticSource()
	} else {
		catalogs = market.NewHTTPSource(cfg.Recommender.BaseURL, log)
	}

	// Catalog reads go through Redis when it is available.
	var cachedCatalogs *market.CachedSource
	if redisClient != nil && redisClient.Enabled() {
		cachedCatalogs = market.NewCachedSource(catalogs, redis.NewCache(redisClient, "investprofile"), log)
		catalogs = cachedCatalogs
	}

	if cfg.LocalMode {
		analyzer = service.NewLocalAnalysisSource()
		selector = service.NewLocalRecommendationSource(catalogs)
		authenticator = auth.NewLocalAuthenticator()
	} else {
		client := remote.NewClient(cfg, log)
		analyzer = service.NewRemoteAnalysisSource(client)
		selector = service.NewRemoteRecommendationSource(client)
		authenticator = auth.NewRemoteAuthenticator(client)
	}

	// 5. Core services
	flowCtrl := flow.NewController(store, log)
	profiles := service.NewProfileService(store, flowCtrl, analyzer, selector, log)
	sessions := auth.NewService(store, authenticator, log)

	// 6. Scheduler keeps the cached catalogs warm
	var sched *scheduler.Scheduler
	if cachedCatalogs != nil {
		sched = scheduler.New(log)
		if err := sched.AddJob(jobs.NewCatalogRefreshJob(cachedCatalogs, cfg.CatalogRefreshSpec, log)); err != nil {
			return fmt.Errorf("register catalog refresh job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 7. Handlers and router
	router := api.NewRouter(
		handlers.NewAuthHandler(sessions, log),
		handlers.NewProfileHandler(profiles, log),
		handlers.NewRecommendationsHandler(profiles, log),
		handlers.NewFlowHandler(profiles, log),
		log,
	)

	// 8. Start server with graceful shutdown
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
