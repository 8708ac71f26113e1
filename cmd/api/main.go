package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ravularamesh74/Job-Portal/config"
	v1 "github.com/Ravularamesh74/Job-Portal/internal/delivery/http/v1"
	"github.com/Ravularamesh74/Job-Portal/internal/repository/localstore"
	"github.com/Ravularamesh74/Job-Portal/internal/repository/upstream"
	"github.com/Ravularamesh74/Job-Portal/internal/session"
	"github.com/Ravularamesh74/Job-Portal/internal/usecase"
	"github.com/Ravularamesh74/Job-Portal/pkg/logger"
	"github.com/Ravularamesh74/Job-Portal/pkg/redis"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting candidate pipeline service", "port", cfg.Port)

	// 3. Setup Redis (rate limiting; falls back to in-memory when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 4. Setup Local Store (device-local saved jobs)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := localstore.Open(ctx, cfg.LocalStorePath)
	cancel()
	if err != nil {
		logger.Log.Error("Failed to open local store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 5. Setup Upstream Sinks
	upstreamClient := upstream.NewClient(cfg.UpstreamBaseURL)
	submissionSink := upstream.NewSubmissionSink(upstreamClient)
	savedJobSink := upstream.NewSavedJobSink(upstreamClient)

	// 6. Setup Sessions and UseCases
	sessions := session.NewRegistry(store, savedJobSink)
	assistUC := usecase.NewAssistUsecase(
		upstream.NewOpenAIAssistant(cfg.AssistAPIKey, cfg.AssistBaseURL, cfg.AssistModel))

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Sessions:       sessions,
		SubmissionSink: submissionSink,
		AssistUC:       assistUC,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
