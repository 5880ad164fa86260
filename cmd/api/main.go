package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	v1 "github.com/bhavin-bhuva/vibesync/cmd/api/router/v1"
	"github.com/bhavin-bhuva/vibesync/internal/config"
	cacheadapter "github.com/bhavin-bhuva/vibesync/internal/infrastructure/cache/adapter"
	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/database"
	queueadapter "github.com/bhavin-bhuva/vibesync/internal/infrastructure/queue/adapter"
	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/realtime"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/adapter"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/presence"
)

func main() {
	// Load .env file; a missing one is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = closeLog() }()

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	// Connect to the database on startup.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it presence heartbeats and the offline
	// sweeper are skipped and online state relies on socket lifecycle alone.
	var tracker *presence.Tracker
	if cfg.RedisURL != "" {
		cache, err := cacheadapter.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, presence heartbeats disabled", "error", err)
		} else {
			defer func() { _ = cache.Close() }()
			tracker = presence.NewTracker(cache, cfg.HeartbeatTTL)
			startPresenceSweeper(cfg, tracker, pool, logger)
		}
	}

	hub := realtime.NewHub(logger)
	defer hub.Close()

	tokens := auth.NewTokenProvider(cfg.JWTSecret, cfg.AccessTokenTTL)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, hub, tokens, tracker, logger)

	logger.Info("api listening", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// startPresenceSweeper runs the background worker that reconciles the
// persisted online flag against missing heartbeats. Queue failures degrade to
// a warning; the API keeps serving without the sweeper.
func startPresenceSweeper(cfg config.Config, tracker *presence.Tracker, pool *pgxpool.Pool, logger *slog.Logger) {
	srv, err := queueadapter.NewAsynqServer(cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("queue server unavailable, presence sweeper disabled", "error", err)
		return
	}
	client, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logger.Warn("queue client unavailable, presence sweeper disabled", "error", err)
		_ = srv.Stop(context.Background())
		return
	}

	presence.RegisterSweepTask(srv, tracker, adapter.NewPgUserRepository(pool), logger)

	go func() {
		if err := srv.Run(context.Background()); err != nil {
			logger.Error("queue server stopped", "error", err)
		}
	}()
	presence.StartSweepLoop(context.Background(), client, cfg.SweepInterval, logger)
}
