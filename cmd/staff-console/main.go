package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	bettingapi "github.com/radieske/event-betting-console/internal/betting-api"
	"github.com/radieske/event-betting-console/internal/console/audit"
	httpapi "github.com/radieske/event-betting-console/internal/console/http"
	eventsapi "github.com/radieske/event-betting-console/internal/events-api"
	"github.com/radieske/event-betting-console/internal/shared/config"
	"github.com/radieske/event-betting-console/internal/shared/logger"
	"github.com/radieske/event-betting-console/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config: %w", err))
	}

	// inicia logger
	log, err := logger.New(logger.Options{ServiceName: cfg.ServiceName, Env: cfg.Env, Level: cfg.LogLevel})
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service",
		zap.String("events_api", cfg.EventsAPI.BaseURL),
		zap.String("betting_api", cfg.BettingAPI.BaseURL),
	)

	// métricas
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	upm := metrics.NewUpstreamMetrics(reg)

	// clients dos upstreams
	events := eventsapi.New(cfg.EventsAPI, log, eventsapi.WithObserver(upm.Observe))
	betting := bettingapi.New(cfg.BettingAPI, log, bettingapi.WithObserver(upm.Observe))

	// auditoria (no-op sem brokers)
	pub := audit.New(cfg.KafkaBrokers, cfg.TopicStaffActions, log)
	defer pub.Close()

	srv, err := httpapi.NewServer(log, events, betting, audit.NewRecorder(pub, log))
	if err != nil {
		log.Fatal("templates", zap.Error(err))
	}

	apiSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsSrv := metrics.NewMetricsServer(cfg.MetricsPort, reg, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("staff-console listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("api shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics shutdown", zap.Error(err))
	}
}
