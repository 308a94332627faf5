// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/holidays-api/internal/config"
	"github.com/carterperez-dev/holidays-api/internal/core"
	"github.com/carterperez-dev/holidays-api/internal/holiday"
	"github.com/carterperez-dev/holidays-api/internal/user"
)

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.User, error)
}

type HolidayStore interface {
	ExistsByNameAndDate(ctx context.Context, name, date string) (bool, error)
	Create(ctx context.Context, h *holiday.Holiday) error
}

type Account struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// EnsureAccount creates the account unless its email is already registered.
// It reports whether a row was added.
func EnsureAccount(ctx context.Context, users UserStore, acc Account) (*user.User, bool, error) {
	existing, err := users.GetUserByEmail(ctx, acc.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, fmt.Errorf("look up %s: %w", acc.Email, err)
	}

	created, err := users.CreateUser(ctx, user.CreateUserRequest{
		Email:    acc.Email,
		Password: acc.Password,
		Name:     acc.Name,
		Role:     acc.Role,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create %s: %w", acc.Email, err)
	}

	return created, true, nil
}

// EnsureAdmin bootstraps the configured administrator on startup.
func EnsureAdmin(
	ctx context.Context,
	users UserStore,
	cfg config.AdminConfig,
	logger *slog.Logger,
) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("default admin not configured, skipping bootstrap")
		return nil
	}

	_, created, err := EnsureAccount(ctx, users, Account{
		Email:    cfg.Email,
		Password: cfg.Password,
		Name:     cfg.Name,
		Role:     user.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if created {
		logger.Info("default admin created", "email", cfg.Email)
	}

	return nil
}

type Result struct {
	UsersCreated     int
	HolidaysCreated  int
	HolidaysExisting int
}

// Run seeds the accounts and the holiday calendar. Holidays whose name and
// date are already stored are skipped.
func Run(
	ctx context.Context,
	users UserStore,
	holidays HolidayStore,
	accounts []Account,
	calendar []holiday.Holiday,
	logger *slog.Logger,
) (*Result, error) {
	result := &Result{}
	var creatorID *int64

	for _, acc := range accounts {
		u, created, err := EnsureAccount(ctx, users, acc)
		if err != nil {
			return nil, err
		}
		if created {
			result.UsersCreated++
			logger.Info("user seeded", "email", acc.Email, "role", acc.Role)
		}
		if creatorID == nil && u.Role == user.RoleAdmin {
			id := u.ID
			creatorID = &id
		}
	}

	for _, h := range calendar {
		exists, err := holidays.ExistsByNameAndDate(ctx, h.Name, h.Date)
		if err != nil {
			return nil, err
		}
		if exists {
			result.HolidaysExisting++
			continue
		}

		row := h
		row.CreatedBy = creatorID
		if err := holidays.Create(ctx, &row); err != nil {
			return nil, fmt.Errorf("seed holiday %s %s: %w", h.Name, h.Date, err)
		}
		result.HolidaysCreated++
	}

	return result, nil
}
