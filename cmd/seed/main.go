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

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/carterperez-dev/holidays-api/internal/config"
	"github.com/carterperez-dev/holidays-api/internal/core"
	"github.com/carterperez-dev/holidays-api/internal/holiday"
	"github.com/carterperez-dev/holidays-api/internal/migrations"
	"github.com/carterperez-dev/holidays-api/internal/seed"
	"github.com/carterperez-dev/holidays-api/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
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

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", "error", closeErr)
		}
	}()

	if err := migrations.Up(ctx, db.DB.DB); err != nil {
		return err
	}

	calendar, err := seed.BrazilianCalendar()
	if err != nil {
		return err
	}

	userSvc := user.NewService(user.NewRepository(db.DB))
	holidayRepo := holiday.NewRepository(db.DB)

	result, err := seed.Run(
		ctx,
		userSvc,
		holidayRepo,
		seed.DefaultAccounts(),
		calendar,
		logger,
	)
	if err != nil {
		return err
	}

	logger.Info("seed complete",
		"users_created", result.UsersCreated,
		"holidays_created", result.HolidaysCreated,
		"holidays_skipped", result.HolidaysExisting,
	)

	return nil
}
