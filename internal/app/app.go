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

	"member-auth/internal/config"
	"member-auth/internal/database"
	"member-auth/internal/handler"
	"member-auth/internal/middleware"
	"member-auth/internal/repository"
	"member-auth/internal/router"
	"member-auth/internal/service"
	"member-auth/internal/token"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	memberRepo := repository.NewMemberRepository(db.Pool)
	slog.Info("database ready")

	codec, err := token.NewCodec([]byte(cfg.SecretKey), cfg.AccessExpireLength, cfg.RefreshExpireLength)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	authService := service.NewAuthService(memberRepo, codec)
	authMiddleware := middleware.NewAuthMiddleware(codec, authService)
	authHandler := handler.NewAuthHandler(authService)
	checkHandler := handler.NewCheckHandler()
	docsHandler := handler.NewDocsHandler("./docs/openapi.yaml")

	if cfg.SeedEmail != "" && cfg.SeedPassword != "" {
		if err := authService.SeedMember(context.Background(), cfg.SeedName, cfg.SeedEmail, cfg.SeedPassword); err != nil {
			slog.Warn("seed member skipped", "error", err)
		}
	}

	appRouter := router.New(cfg, authMiddleware, authHandler, checkHandler, docsHandler)

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
