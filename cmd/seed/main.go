// Command seed creates the initial admin account. It is idempotent: an
// existing account with the configured email is left untouched.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"
	"storefront/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	email := getEnv("ADMIN_EMAIL", "admin@storefront.local")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.Database.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	userRepo := repository.NewUserRepository(db, logger)

	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Info().Str("email", email).Msg("admin account already exists")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &model.User{
		Name:         getEnv("ADMIN_NAME", "Admin"),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Addresses:    []model.Address{},
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info().Str("email", email).Str("user_id", admin.ID.Hex()).Msg("admin account created")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
