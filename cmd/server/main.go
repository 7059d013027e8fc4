package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"document-redaction-api/internal/config"
	"document-redaction-api/internal/handler"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()
	defer container.Sync()
	cfg := container.Config

	if dsn := cfg.GetSentryDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			container.Logger.Error("Sentry initialization failed", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Handlers
	redactionHandler := handler.NewRedactionHandler(
		container.AnalysisService,
		cfg.GetMaxFileSize(),
		cfg.GetTempDir(),
		container.Logger,
	)

	// Router
	router := handler.NewRouter(redactionHandler, cfg.GetCORSOrigin())

	// start server
	server := newHTTPServer(":"+cfg.GetServerPort(), handler.NewMiddlewareStack(router, container.Logger))

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}

// newHTTPServer bounds every phase of a connection. The write timeout
// covers the longest request: a full upload analyzed chunk by chunk.
func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       time.Minute,
	}
}
