// Package cache holds the idempotency stores that guard checkout retries.
package cache

import (
	"context"
	"fmt"

	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OpenIdempotencyStore picks the store for cfg. With Redis disabled it is a
// MemoryStore. With Redis enabled but unreachable it is an error when
// requireRedis is set, otherwise a MemoryStore with a warning.
func OpenIdempotencyStore(ctx context.Context, cfg config.RedisConfig, requireRedis bool, log *zap.Logger) (shared.IdempotencyStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Enabled {
		log.Info("Redis disabled, checkout idempotency kept in memory")
		return NewMemoryStore(), nil
	}

	client, err := DialRedis(ctx, cfg.Addr(), cfg.Password, cfg.DB)
	if err != nil {
		if requireRedis {
			return nil, fmt.Errorf("idempotency store: %w", err)
		}
		log.Warn("Redis unreachable, checkout idempotency kept in memory; retries on other replicas are not deduplicated",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewMemoryStore(), nil
	}

	log.Info("Checkout idempotency stored in Redis", zap.String("addr", cfg.Addr()))
	return NewRedisStore(client, ""), nil
}
