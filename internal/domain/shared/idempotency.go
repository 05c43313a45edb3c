package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which events were already handled so a redelivered
// event does not run its side effects twice
type IdempotencyStore interface {
	// MarkProcessed atomically claims the key for ttl.
	// Returns true if the caller claimed it, false if someone already had.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key is currently claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release drops a claim so the next delivery of the event runs again
	Release(ctx context.Context, key string) error

	// Close releases the store's resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotent event handling
type IdempotencyConfig struct {
	// TTL bounds how long a handled event stays claimed (default 24h)
	TTL time.Duration
	// Enabled turns the check off entirely when false
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
