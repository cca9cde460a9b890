// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/carterperez-dev/viralboost/internal/admin"
	"github.com/carterperez-dev/viralboost/internal/auth"
	"github.com/carterperez-dev/viralboost/internal/catalog"
	"github.com/carterperez-dev/viralboost/internal/config"
	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
	"github.com/carterperez-dev/viralboost/internal/generation"
	"github.com/carterperez-dev/viralboost/internal/generator"
	"github.com/carterperez-dev/viralboost/internal/health"
	"github.com/carterperez-dev/viralboost/internal/middleware"
	"github.com/carterperez-dev/viralboost/internal/profile"
	"github.com/carterperez-dev/viralboost/internal/server"
	"github.com/carterperez-dev/viralboost/internal/user"
	"github.com/carterperez-dev/viralboost/internal/workflow"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"generator", cfg.Generator.Provider,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if !cfg.IsProduction() {
		created, keyErr := auth.EnsurePrivateKey(cfg.JWT.PrivateKeyPath)
		if keyErr != nil {
			return keyErr
		}
		if created {
			logger.Warn("generated development signing key",
				"path", cfg.JWT.PrivateKeyPath,
			)
		}
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}

	gen, closeGenerator, err := generator.FromConfig(ctx, cfg.Generator, logger)
	if err != nil {
		return err
	}
	if cfg.Generator.Provider != config.ProviderMock && cfg.Generator.APIKey == "" {
		logger.Warn("no generator API key configured, serving placeholder content",
			"provider", cfg.Generator.Provider,
		)
	}

	policy := entitlement.NewPolicy(cfg.Quota.FreeDailyLimit)
	loc := cfg.Quota.Location()

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	jwtManager.WithRevocations(authSvc)
	authHandler := auth.NewHandler(authSvc)

	profileRepo := profile.NewRepository(db.DB)
	profileSvc := profile.NewService(profileRepo, logger)
	profileHandler := profile.NewHandler(profileSvc)

	userHandler := user.NewHandler(userSvc, profileSvc)

	generationRepo := generation.NewRepository(db.DB, time.Now)
	workflowSvc := workflow.NewService(profileSvc, generationRepo, gen, policy, logger)
	workflowHandler := workflow.NewHandler(workflowSvc, cfg.Billing.CheckoutURL)

	catalogHandler := catalog.NewHandler(catalog.Build(policy, cfg.Billing))

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis, Optional: true},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:     db.Stats,
		RedisStats:  redis.PoolStats,
		DBPing:      db.Ping,
		RedisPing:   redis.Ping,
		Generations: generationRepo,
		Tiers:       profileSvc,
		Users:       userSvc,
		Provider:    cfg.Generator.Provider,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.Timezone(loc))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler)

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	generationLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(cfg.RateLimit.Generate, cfg.RateLimit.Generate),
		Prefix:   core.RedisKey("ratelimit", "generate"),
		KeyFunc:  middleware.KeyByUser,
		FailOpen: true,
	}).Handler

	router.Route("/v1", func(r chi.Router) {
		catalogHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterRoutes(r, authenticator)
		workflowHandler.RegisterRoutes(r, authenticator, generationLimiter)

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		profileHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := closeGenerator(); err != nil {
		logger.Error("generator close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
