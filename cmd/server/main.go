package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/cache"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/database"
	"github.com/stemsi/quizdoc/internal/handler"
	"github.com/stemsi/quizdoc/internal/logger"
	"github.com/stemsi/quizdoc/internal/middleware"
	"github.com/stemsi/quizdoc/internal/router"
	"github.com/stemsi/quizdoc/internal/service"
	"github.com/stemsi/quizdoc/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("output", cfg.OutputPath).
		Msg("Starting quiz server")

	if cfg.ProfilePath != "" {
		p, err := config.LoadProfile(cfg.ProfilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load profile")
		}
		p.Apply(cfg)
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional result cache) ──────────────────────
	var resultCache service.ResultCache
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		resultCache = cache.NewRedisResultCache(rdb, cfg.CacheTTL)
	} else {
		log.Info().Msg("REDIS_URL not set, extraction results are not cached")
	}

	// ─── Initialize Services & Handlers ───────────────────────────────
	quizService := service.NewQuizService(cfg, resultCache, log)
	handlers := &router.Handlers{
		Quiz: handler.NewQuizHandler(quizService, cfg.MaxUploadBytes, log),
	}

	extractLimiter := middleware.NewRateLimiter(ctx, cfg.ExtractRate, time.Minute)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(cfg, handlers, extractLimiter, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
