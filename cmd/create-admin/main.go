// Command create-admin creates an admin account, or promotes an existing
// account with the same email to admin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"turf-booking/internal/config"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/database"
	"turf-booking/internal/logger"
	"turf-booking/pkg/utils"

	"go.uber.org/zap"
)

type adminOptions struct {
	FullName string
	Email    string
	Username string
	Password string
	Phone    string
}

func main() {
	var opts adminOptions
	flag.StringVar(&opts.FullName, "name", "Admin User", "full name")
	flag.StringVar(&opts.Email, "email", "", "admin email (required)")
	flag.StringVar(&opts.Username, "username", "admin", "admin username")
	flag.StringVar(&opts.Password, "password", "", "admin password (required for new accounts)")
	flag.StringVar(&opts.Phone, "phone", "", "contact phone")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, created, err := ensureAdmin(ctx, database.NewUserRepository(db), opts)
	if err != nil {
		logger.Fatal("Failed to create admin", zap.Error(err))
	}

	if created {
		fmt.Printf("Admin user created: %s (%s)\n", admin.Email, admin.Username)
	} else {
		fmt.Printf("Existing user promoted to admin: %s (%s)\n", admin.Email, admin.Username)
	}
}

// ensureAdmin promotes the account registered under opts.Email, or creates
// a new active admin when none exists.
func ensureAdmin(ctx context.Context, users domainUser.Repository, opts adminOptions) (*domainUser.User, bool, error) {
	email := utils.SanitizeEmail(opts.Email)
	if email == "" {
		return nil, false, errors.New("-email is required")
	}

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domainUser.RoleAdmin {
			if err := users.UpdateRole(ctx, existing.ID, domainUser.RoleAdmin); err != nil {
				return nil, false, err
			}
			existing.Role = domainUser.RoleAdmin
		}
		logger.Info("Admin account promoted",
			zap.String("user_id", existing.ID.String()),
			zap.String("event", "admin_promoted"),
		)
		return existing, false, nil
	case !errors.Is(err, domainUser.ErrUserNotFound):
		return nil, false, err
	}

	if err := utils.ValidatePassword(opts.Password); err != nil {
		return nil, false, fmt.Errorf("-password: %w", err)
	}
	hash, err := utils.HashPassword(opts.Password)
	if err != nil {
		return nil, false, err
	}

	admin := &domainUser.User{
		FullName:     utils.SanitizeString(opts.FullName),
		Email:        email,
		Username:     utils.SanitizeIdentifier(opts.Username),
		PasswordHash: hash,
		Phone:        utils.SanitizePhone(opts.Phone),
		Role:         domainUser.RoleAdmin,
		Status:       domainUser.StatusActive,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, false, err
	}

	logger.Info("Admin account created",
		zap.String("user_id", admin.ID.String()),
		zap.String("event", "admin_created"),
	)
	return admin, true, nil
}
