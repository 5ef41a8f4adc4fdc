package cache

import (
	"context"
	"fmt"
	"time"

	appproduction "github.com/atelier/backend/internal/application/production"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// NewOrderLocker builds the order locker selected by cfg.Backend. The redis
// backend needs a client; the memory backend ignores it.
func NewOrderLocker(cfg config.OrderLockConfig, client redis.UniversalClient, logger *zap.Logger) (appproduction.OrderLocker, error) {
	switch cfg.Backend {
	case "", "memory":
		logger.Info("using in-memory order locks")
		return NewMemoryOrderLocker(cfg.WaitTimeout), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("order_lock.backend is redis but no Redis client is available")
		}
		logger.Info("using Redis order locks", zap.Duration("ttl", cfg.TTL))
		return NewRedisOrderLocker(client, cfg.TTL, cfg.WaitTimeout, logger.Named("order_lock")), nil
	default:
		return nil, fmt.Errorf("unknown order lock backend %q", cfg.Backend)
	}
}
