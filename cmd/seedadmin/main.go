// Command seedadmin migrates the database and inserts or refreshes the
// administrator account. Useful for first deployments and for rotating
// the admin password without restarting the server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/logger"
	"docvault/internal/repository"
	"docvault/internal/service"
)

func main() {
	slog.SetDefault(slog.New(logger.New(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	username := flag.String("username", "", "admin username (defaults to ADMIN_USERNAME)")
	password := flag.String("password", "", "admin password (defaults to ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *username == "" {
		*username = cfg.AdminUsername
	}
	if *password == "" {
		*password = cfg.AdminPassword
	}
	if *password == "" {
		slog.Error("admin password is required (flag -password or ADMIN_PASSWORD)")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}
	authService := service.NewAuthService(repository.NewUserRepository(db.Pool), tokenService)

	if err := authService.EnsureSeedAdmin(ctx, *username, *password); err != nil {
		slog.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}

	slog.Info("admin account ready", "username", *username)
}
