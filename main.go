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

	"github.com/joho/godotenv"

	"mostrador-pos/app"
	"mostrador-pos/config"
	"mostrador-pos/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize application
	application, err := app.Initialize(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalf("❌ %v", err)
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker)
	port := cfg.Port
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infof("🚀 Server starting on %s (currency=%s tax=%s%%)", srv.Addr, cfg.Currency, cfg.TaxRate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	sugar.Infof("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("❌ Graceful shutdown failed: %v", err)
	}
}
