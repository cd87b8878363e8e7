package main

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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/matchday/roster-system/config"
	"github.com/matchday/roster-system/db"
	"github.com/matchday/roster-system/handlers"
	"github.com/matchday/roster-system/live"
	"github.com/matchday/roster-system/repositories"
	api "github.com/matchday/roster-system/routes"
	"github.com/matchday/roster-system/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Int("min_squad_size", cfg.MinSquadSize))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	hub := live.NewHub()
	go hub.Run()
	logger.Info("websocket hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	availabilityRepo := repositories.NewPostgresAvailabilityRepository(dbConn)
	logger.Info("repositories initialized")

	retention := services.NewRetentionPolicy()
	playerService := services.NewPlayerService(playerRepo, availabilityRepo, retention, hub)
	matchService := services.NewMatchService(matchRepo, playerRepo, availabilityRepo, retention, cfg.MinSquadSize, hub)
	availabilityService := services.NewAvailabilityService(availabilityRepo, matchRepo, playerRepo, retention, hub)
	logger.Info("services initialized")

	// Retention maintenance: drop past matches and heal missing availability
	// placeholders, immediately at startup and then on every tick.
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		logger.Info("retention scheduler started", slog.Duration("interval", cfg.CleanupInterval))

		runMaintenance(matchService, availabilityService, logger)
		for range ticker.C {
			runMaintenance(matchService, availabilityService, logger)
		}
	}()

	playerHandler := handlers.NewPlayerHandler(playerService)
	matchHandler := handlers.NewMatchHandler(matchService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	maintenanceHandler := handlers.NewMaintenanceHandler(matchService, availabilityService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		playerHandler,
		matchHandler,
		availabilityHandler,
		maintenanceHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

func runMaintenance(matchService services.MatchService, availabilityService services.AvailabilityService, logger *slog.Logger) {
	ctx := context.Background()

	removed, err := matchService.CleanupPastMatches(ctx)
	if err != nil {
		logger.Error("scheduler: cleanup of past matches failed", slog.Any("error", err))
	} else if len(removed) > 0 {
		logger.Info("scheduler: removed past matches", slog.Int("count", len(removed)))
	}

	added, err := availabilityService.ReconcileAll(ctx)
	if err != nil {
		logger.Error("scheduler: availability reconciliation failed", slog.Any("error", err))
	} else if added > 0 {
		logger.Info("scheduler: backfilled availability placeholders", slog.Int64("count", added))
	}
}
