package cache

import (
	"context"
	"fmt"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Idempotency store kinds accepted in configuration
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// IdempotencyStoreFactory builds the idempotency store selected in configuration
type IdempotencyStoreFactory struct {
	eventCfg      config.EventConfig
	redisCfg      config.RedisConfig
	logger        *zap.Logger
	allowFallback bool
}

// IdempotencyStoreFactoryOption configures the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback allows falling back to memory when Redis cannot be reached
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a factory; fallback is off unless requested
func NewIdempotencyStoreFactory(eventCfg config.EventConfig, redisCfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		eventCfg: eventCfg,
		redisCfg: redisCfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the configured store
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	switch f.eventCfg.IdempotencyStore {
	case StoreMemory, "":
		f.logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	case StoreRedis:
		store, err := NewRedisIdempotencyStore(ctx, f.redisCfg)
		if err == nil {
			f.logger.Info("Using Redis idempotency store", zap.String("addr", f.redisCfg.Addr()))
			return store, nil
		}
		if !f.allowFallback {
			return nil, fmt.Errorf("create redis idempotency store: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", f.redisCfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(), nil
	default:
		return nil, fmt.Errorf("unknown idempotency store %q", f.eventCfg.IdempotencyStore)
	}
}
