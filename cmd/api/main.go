// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/carterperez-dev/holidays-api/internal/admin"
	"github.com/carterperez-dev/holidays-api/internal/auth"
	"github.com/carterperez-dev/holidays-api/internal/config"
	"github.com/carterperez-dev/holidays-api/internal/core"
	"github.com/carterperez-dev/holidays-api/internal/health"
	"github.com/carterperez-dev/holidays-api/internal/holiday"
	"github.com/carterperez-dev/holidays-api/internal/middleware"
	"github.com/carterperez-dev/holidays-api/internal/migrations"
	"github.com/carterperez-dev/holidays-api/internal/seed"
	"github.com/carterperez-dev/holidays-api/internal/server"
	"github.com/carterperez-dev/holidays-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

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
	)

	if cfg.JWT.Secret == config.DefaultJWTSecret {
		logger.Warn("using the default JWT secret, set JWT_SECRET")
	}

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
		telemetry = nil
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, db.DB.DB); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "HS256",
		"expires_in", cfg.JWT.ExpiresIn.String(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	if err := seed.EnsureAdmin(ctx, userSvc, cfg.Admin, logger); err != nil {
		return err
	}

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	holidayRepo := holiday.NewRepository(db.DB)
	holidaySvc := holiday.NewService(holidayRepo)
	holidayHandler := holiday.NewHandler(holidaySvc)

	healthHandler := health.NewHandler(db)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:      db.Stats,
		DBPing:       db.Ping,
		UserCount:    userSvc.Count,
		HolidayCount: func(ctx context.Context) (int, error) {
			return holidaySvc.Count(ctx, holiday.Filter{})
		},
		ActiveHolidays: func(ctx context.Context) (int, error) {
			active := true
			return holidaySvc.Count(ctx, holiday.Filter{Active: &active})
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	if telemetry != nil {
		router.Use(middleware.Tracing(telemetry.Tracer))
	}
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(jwtManager, userSvc)
	optionalAuth := middleware.OptionalAuth(jwtManager, userSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		healthHandler.RegisterAPIRoutes(r)
		authHandler.RegisterRoutes(r, authenticator, optionalAuth)
		holidayHandler.RegisterRoutes(r, authenticator, adminOnly)
		userHandler.RegisterRoutes(
			r,
			authenticator,
			adminOnly,
			middleware.RequireSelfOrAdmin("userID"),
		)
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

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
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
