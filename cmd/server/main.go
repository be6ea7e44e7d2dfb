package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"veritas/internal/decision"
	"veritas/internal/document"
	"veritas/internal/face"
	"veritas/internal/govregistry"
	"veritas/internal/ocr"
	"veritas/internal/platform/config"
	"veritas/internal/platform/health"
	"veritas/internal/platform/httpserver"
	"veritas/internal/platform/logger"
	"veritas/internal/platform/metrics"
	httptransport "veritas/internal/transport/http"
	"veritas/pkg/platform/audit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing veritas",
		"addr", cfg.Addr,
		"registry_configured", cfg.Registry.Token != "",
	)

	m := metrics.New()

	auditor := audit.NewPublisher(audit.NewSlogSink(log),
		audit.WithPublisherLogger(log),
		audit.WithPublisherMetrics(audit.NewMetrics()),
	)
	defer auditor.Close()

	ocrClient := ocr.NewHTTPClient(cfg.OCR.BaseURL, cfg.OCR.APIKey, cfg.OCR.Timeout)
	faceClient := face.NewHTTPClient(cfg.Face.BaseURL, cfg.Face.Timeout)
	registry := buildRegistry(cfg, log)

	documents := document.New(ocrClient, registry, auditor,
		document.WithMetrics(m),
		document.WithLogger(log),
	)
	decisions := decision.New(ocrClient, faceClient, auditor,
		decision.WithMetrics(m),
		decision.WithLogger(log),
	)

	healthHandler := health.New(environment())

	handler := httptransport.NewHandler(documents, faceClient, decisions, log)
	router := httptransport.NewRouter(handler, log, httptransport.RouterConfig{
		APIKeyHash: cfg.APIKeyHash,
		Observer:   m,
		Health:     healthHandler,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// buildRegistry returns the government verification provider, or the disabled
// placeholder when no credential is configured. A missing registry is an
// expected deployment mode, not a startup error.
func buildRegistry(cfg config.Server, log *slog.Logger) govregistry.Verifier {
	if cfg.Registry.Token == "" || cfg.Registry.BaseURL == "" {
		log.Info("government registry not configured, lookups will report not_configured")
		return govregistry.Disabled{}
	}
	return govregistry.NewHTTPClient(
		cfg.Registry.BaseURL,
		cfg.Registry.Token,
		[]byte(cfg.TokenSigningKey),
		cfg.Registry.Timeout,
	)
}

func environment() string {
	if env := os.Getenv("VERITAS_ENV"); env != "" {
		return env
	}
	return "development"
}
