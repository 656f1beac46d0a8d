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

	"courseapi/internal/catalog"
	"courseapi/internal/config"
	"courseapi/internal/lifecycle"
	"courseapi/internal/logging"
	"courseapi/internal/metrics"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger("courseapi", cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dataset, err := catalog.LoadDataset(cfg.DatasetPath)
	if err != nil {
		logger.Fatal("cannot load dataset", zap.String("path", cfg.DatasetPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := lifecycle.NewController(lifecycle.Config{
		Addr:         cfg.Addr,
		BaseURL:      cfg.BaseURL,
		Dataset:      dataset,
		RetryCount:   cfg.ProbeRetryCount,
		RetryDelay:   cfg.ProbeRetryDelay,
		MaxBodyBytes: cfg.MaxBodyBytes,
		RateRPS:      cfg.RateRPS,
		RateBurst:    cfg.RateBurst,
	}, logger)

	if err := controller.Start(ctx); err != nil {
		logger.Fatal("cannot start course api", zap.Error(err))
	}
	if !controller.Serving() {
		logger.Info("another course api instance owns the address, exiting", zap.String("base_url", cfg.BaseURL))
		return
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = startMetricsServer(cfg.MetricsAddr, logger)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	if err := controller.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	router := http.NewServeMux()
	router.Handle("/metrics", metrics.Handler())
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()
	return srv
}
