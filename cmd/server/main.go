package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kegiatan-kampus/internal/config"
	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/http/handlers"
	"kegiatan-kampus/internal/http/router"
	"kegiatan-kampus/internal/logging"
	"kegiatan-kampus/internal/metrics"
	"kegiatan-kampus/internal/security"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", envOr("APP_CONFIG", "config/app.yaml"), "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration validation failed")
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogPretty)
	logger.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("db_driver", cfg.DBDriver).
		Msg("Service starting")

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid timezone")
	}

	// Initialize database
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	database, err := db.Init(initCtx, cfg.DBDriver, cfg.DBDSN, db.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	cancelInit()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()
	logger.Info().Msg("Database ready, migrations applied")

	// Initialize session store
	store := security.NewDBStore(database, cfg.CookieSecure, []byte(cfg.Secret))
	health := handlers.NewHealthHandler(database)

	r := router.Setup(router.Deps{
		DB:        database,
		Sessions:  security.NewSessionManager(store),
		Logger:    logger,
		Metrics:   metrics.NewWithRuntime(),
		Health:    health,
		Location:  loc,
		StaticDir: cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received")

	health.Drain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	logger.Info().Msg("Graceful shutdown complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
