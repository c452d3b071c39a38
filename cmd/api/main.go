package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/lead-capture/internal/api/router"
	"github.com/wolfman30/lead-capture/internal/app/bootstrap"
	appconfig "github.com/wolfman30/lead-capture/internal/config"
	"github.com/wolfman30/lead-capture/internal/leads"
	"github.com/wolfman30/lead-capture/internal/observability/metrics"
	"github.com/wolfman30/lead-capture/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-capture API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"leads_backend", cfg.LeadsBackend,
	)

	storage, err := bootstrap.BuildLeadStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize lead storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	handler := buildHandler(cfg, storage, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func buildHandler(cfg *appconfig.Config, storage *bootstrap.LeadStorage, logger *logging.Logger) http.Handler {
	opts := []leads.HandlerOption{
		leads.WithInsertTimeout(cfg.LeadInsertTimeout),
		leads.WithMaxBodyBytes(cfg.MaxBodyBytes),
	}
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		var leadMetrics *metrics.LeadMetrics
		metricsHandler, leadMetrics = setupLeadMetrics()
		opts = append(opts, leads.WithMetrics(leadMetrics, storage.Backend))
	}

	leadsHandler := leads.NewHandler(storage.Repository, logger, opts...)

	return router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
}

func setupLeadMetrics() (http.Handler, *metrics.LeadMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewLeadMetrics(reg)
}
