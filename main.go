package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voiceguard/api"
	"voiceguard/config"
	"voiceguard/detection"
	"voiceguard/events"
	"voiceguard/language"
	"voiceguard/provider/realitydefender"
	"voiceguard/upload"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	scratch, err := upload.NewScratch(cfg.UploadDir, config.MaxUploadSize)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	sweeper := upload.NewSweeper(cfg.UploadDir, cfg.ScratchMaxAge)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		log.Fatalf("Failed to start scratch sweeper: %v", err)
	}

	publisher := events.FromBrokers(cfg.KafkaBrokers, cfg.KafkaTopic)

	adapter := detection.NewAdapter(func() (detection.Provider, error) {
		client, err := realitydefender.New(realitydefender.Config{
			APIKey:       cfg.ProviderAPIKey,
			BaseURL:      cfg.ProviderBaseURL,
			PollInterval: cfg.PollInterval,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}, detection.RetryConfig{
		MaxAttempts:    cfg.MaxAttempts,
		Delay:          cfg.RetryDelay,
		AttemptTimeout: cfg.AttemptTimeout,
	})

	r := api.NewRouter(api.Deps{
		ServiceName:      cfg.ServiceName,
		APIKey:           cfg.APIKey,
		MaxUploadSize:    config.MaxUploadSize,
		Scratch:          scratch,
		Detector:         adapter,
		Language:         language.FromConfig(cfg),
		Publisher:        publisher,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("🎙️  %s", cfg.ServiceName)
	log.Printf("   Listening on:   http://0.0.0.0:%s", cfg.Port)
	log.Printf("   Provider:       %s", cfg.ProviderBaseURL)
	log.Printf("   Retry policy:   %d attempts, %s apart", cfg.MaxAttempts, cfg.RetryDelay)
	log.Printf("   Upload dir:     %s (sweep %q, max age %s)", cfg.UploadDir, cfg.SweepSchedule, cfg.ScratchMaxAge)
	api.LogRoutes(r)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	sweeper.Stop()
	if err := publisher.Close(); err != nil {
		log.Printf("Event publisher close error: %v", err)
	}
	log.Println("Server stopped")
}
