package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/adapter/geojson"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/adapter/httpapi"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/adapter/xlsx"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/config"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/domain"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/observability"
	"github.com/Charles-Vizcarra/Evacuation-center-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	facilities := geojson.NewSource(cfg.GeoJSONPath, logger)
	registry := xlsx.NewSource(cfg.XLSXPath, logger)
	sampler := domain.NewSampler(cfg.RandSeed)

	p := pipeline.New(facilities, registry, sampler, logger, metrics, cfg.CacheTTL)

	srv := httpapi.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the cache so the first dashboard request is served from memory.
	warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
	if _, err := p.Snapshot(warmCtx); err != nil {
		logger.Warn("initial snapshot build failed, will retry on first request", "error", err)
	}
	warmCancel()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
