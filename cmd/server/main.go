package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/infrastructure/cache"
	"github.com/erp/stockplanner/internal/infrastructure/config"
	"github.com/erp/stockplanner/internal/infrastructure/event"
	"github.com/erp/stockplanner/internal/infrastructure/logger"
	"github.com/erp/stockplanner/internal/infrastructure/persistence"
	"github.com/erp/stockplanner/internal/infrastructure/telemetry"
	"github.com/erp/stockplanner/internal/interfaces/http/handler"
	"github.com/erp/stockplanner/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewForEnvironment(cfg.App.Env, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting stock planner",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(log, "meter provider", meterProvider.Shutdown)

	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:  meterProvider.Meter("stockplanner.replenishment"),
		Logger: log,
	})
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		return err
	}

	isolation, err := replenishmentapp.ParseIsolationLevel(cfg.Replenishment.IsolationLevel)
	if err != nil {
		return err
	}
	newUnitOfWork := persistence.NewGormUnitOfWorkFactory(db.DB, persistence.NewGormRepositoryDispatch(), log)

	bus := event.NewInMemoryEventBus(log)

	forecastService := replenishmentapp.NewForecastService(newUnitOfWork, isolation, log)
	forecastService.SetEventPublisher(bus)
	forecastService.SetBusinessMetrics(businessMetrics)

	recommendationService := replenishmentapp.NewRecommendationService(
		newUnitOfWork,
		replenishment.NewEngine(time.Now),
		replenishmentapp.RecommendationConfig{
			CoverageDays:   cfg.Replenishment.CoverageDays,
			IsolationLevel: isolation,
		},
		log,
	)
	recommendationService.SetEventPublisher(bus)
	recommendationService.SetBusinessMetrics(businessMetrics)

	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Event, cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	event.RegisterReplenishmentHandlers(bus,
		event.ReplenishmentHandlers{
			ForecastGenerated: replenishmentapp.NewForecastGeneratedHandler(recommendationService, log),
			Alerts: replenishmentapp.NewRecommendationAlertHandler(log).
				WithNotifier(replenishmentapp.NewLoggingReorderAlertNotifier(log)),
		},
		idempotencyStore,
		shared.IdempotencyConfig{Enabled: true, TTL: cfg.Event.IdempotencyTTL},
		new(event.IdempotencyMetrics),
		log,
	)
	if err := bus.Start(ctx); err != nil {
		return err
	}
	defer shutdownWithTimeout(log, "event bus", bus.Stop)

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		MeterProvider:  meterProvider,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		AllowOrigins:   cfg.HTTP.AllowOrigins,
	}, log)
	if err != nil {
		return err
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(handler.NewForecastHandler(forecastService)).
		Register(handler.NewRecommendationHandler(recommendationService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}

func shutdownWithTimeout(log *zap.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Shutdown failed", zap.String("component", name), zap.Error(err))
	}
}
