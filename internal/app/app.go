package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/handler"
	"docvault/internal/middleware"
	"docvault/internal/repository"
	"docvault/internal/router"
	"docvault/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := database.Migrate(context.Background(), cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	documentRepo := repository.NewDocumentRepository(db.Pool)

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize token service: %w", err)
	}
	authService := service.NewAuthService(userRepo, tokenService)
	documentService := service.NewDocumentService(documentRepo)

	if cfg.AdminPassword != "" {
		if err := authService.EnsureSeedAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	} else {
		slog.Warn("ADMIN_PASSWORD not set, skipping admin seed")
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Document: handler.NewDocumentHandler(documentService),
		Admin:    handler.NewAdminHandler(authService, documentService),
		Static:   handler.NewStaticHandler(cfg.WebRoot),
		Health: func(w http.ResponseWriter, r *http.Request) {
			if err := db.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("database unreachable"))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
