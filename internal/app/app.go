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

	"go-location-share/internal/config"
	"go-location-share/internal/database"
	"go-location-share/internal/handler"
	"go-location-share/internal/middleware"
	"go-location-share/internal/repository"
	"go-location-share/internal/router"
	"go-location-share/internal/service"
	"go-location-share/internal/storage"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	reportLeftoverUploads(store)

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	locationRepo := repository.NewLocationRepository(db.Pool)
	auditRepo := repository.NewAuditRepository(db.Pool)
	slog.Info("database ready")

	tokenService, err := service.NewTokenService(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService, err := service.NewAuthService(service.AdminCredentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, tokenService)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	mediaService, err := service.NewMediaService(store, service.MediaLimits{
		MaxBytes:  cfg.MaxUploadSize,
		MaxWidth:  cfg.MaxImageWidth,
		MaxHeight: cfg.MaxImageHeight,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize media service: %w", err)
	}

	auditService := service.NewAuditService(auditRepo)
	locationService := service.NewLocationService(locationRepo)

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(tokenService), router.Handlers{
		Auth:     handler.NewAuthHandler(authService, auditService),
		Media:    handler.NewMediaHandler(mediaService, auditService),
		Location: handler.NewLocationHandler(locationService, auditService),
		Health:   handler.NewHealthHandler(db),
		Audit:    handler.NewAuditHandler(auditService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			func() {
				db.Close()
			},
		},
	}, nil
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

	shutdownErr := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

// reportLeftoverUploads logs temp files left behind by interrupted uploads.
func reportLeftoverUploads(store *storage.Storage) {
	leftovers, err := store.TempFiles()
	if err != nil {
		slog.Warn("could not scan upload directory", "error", err)
		return
	}
	if len(leftovers) > 0 {
		slog.Warn("interrupted uploads left temp files", "count", len(leftovers), "dir", store.RootAbs())
	}
}
