package router

import (
	"github.com/erp/stockplanner/internal/infrastructure/logger"
	"github.com/erp/stockplanner/internal/infrastructure/telemetry"
	"github.com/erp/stockplanner/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngineConfig selects the middleware stack of the HTTP engine
type EngineConfig struct {
	ServiceName    string
	TracingEnabled bool
	MeterProvider  *telemetry.MeterProvider
	MaxBodySize    int64
	TrustedProxies []string
	AllowOrigins   []string
}

// NewEngine builds a gin engine with request logging, panic recovery, tracing,
// metrics and the security middleware installed in that order
func NewEngine(cfg EngineConfig, log *zap.Logger) (*gin.Engine, error) {
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.AllowOrigins

	engine.Use(
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: cfg.TracingEnabled}),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{MeterProvider: cfg.MeterProvider, Enabled: cfg.MeterProvider != nil}),
		middleware.CORSWithConfig(cors),
		middleware.Secure(),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	return engine, nil
}
