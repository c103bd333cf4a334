package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/sumire/pixelboard/internal/board"
	"github.com/sumire/pixelboard/internal/config"
	"github.com/sumire/pixelboard/internal/handler"
	"github.com/sumire/pixelboard/internal/provider"
	"github.com/sumire/pixelboard/internal/provider/discord"
	"github.com/sumire/pixelboard/internal/provider/google"
	"github.com/sumire/pixelboard/internal/provider/reddit"
	"github.com/sumire/pixelboard/internal/repository"
	"github.com/sumire/pixelboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var store service.Store
	var pixels handler.PixelFinder
	if cfg.DatabaseURL != "" {
		db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		slog.Info("database connected")

		store = repository.NewAccountRepository(db, cfg.SignupTokenTTL, cfg.SessionTTL)
		pixels = repository.NewPixelRepository(db)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		store = repository.NewMemoryStore(cfg.SignupTokenTTL, cfg.SessionTTL)
		pixels = repository.NoPixels{}
	}

	var adapters []provider.Provider
	if cfg.Discord.Configured() {
		adapters = append(adapters, discord.New(cfg.Discord.ClientID, cfg.Discord.ClientSecret, cfg.PublicURL))
	}
	if cfg.Google.Configured() {
		adapters = append(adapters, google.New(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.PublicURL))
	}
	if cfg.Reddit.Configured() {
		adapters = append(adapters, reddit.New(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.PublicURL))
	}
	registry := provider.NewRegistry(adapters...)

	authSvc := service.NewAuthService(registry, store)
	authHandler := handler.NewAuthHandler(authSvc, handler.NewAppValidator(),
		cfg.CookieSecure, cfg.SignupTokenTTL, cfg.SessionTTL)
	boardHandler := handler.NewBoardHandler(
		board.New(cfg.BoardWidth, cfg.BoardHeight, cfg.BoardPalette, cfg.CaptchaKey), pixels)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	handler.Register(e, authSvc, authHandler, boardHandler)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "providers", registry.Names())
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
