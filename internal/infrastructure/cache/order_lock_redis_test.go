package cache

import (
	"context"
	"os"
	"testing"
	"time"

	appproduction "github.com/atelier/backend/internal/application/production"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newLiveRedisClient connects to ATELIER_TEST_REDIS_ADDR (localhost:6379 by
// default) and skips the test when nothing answers there.
func newLiveRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("ATELIER_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// unreachableRedisClient points at a port nobody listens on
func unreachableRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisOrderLocker_Unreachable(t *testing.T) {
	locker := NewRedisOrderLocker(unreachableRedisClient(t), time.Second, time.Second, zap.NewNop())

	unlock, err := locker.Lock(context.Background(), uuid.New())
	assert.Nil(t, unlock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire order lock")
	assert.NotErrorIs(t, err, appproduction.ErrOrderBusy)
}

func TestNewOrderLocker_Redis(t *testing.T) {
	locker, err := NewOrderLocker(config.OrderLockConfig{Backend: "redis", TTL: time.Second}, unreachableRedisClient(t), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &RedisOrderLocker{}, locker)
}

func TestRedisOrderLocker_Live(t *testing.T) {
	client := newLiveRedisClient(t)
	ctx := context.Background()

	newLocker := func(t *testing.T) (*RedisOrderLocker, uuid.UUID) {
		locker := NewRedisOrderLocker(client, 5*time.Second, 150*time.Millisecond, zap.NewNop())
		locker.retry = 10 * time.Millisecond
		orderID := uuid.New()
		t.Cleanup(func() { client.Del(ctx, locker.keyPrefix+orderID.String()) })
		return locker, orderID
	}

	t.Run("second holder waits and gives up", func(t *testing.T) {
		locker, orderID := newLocker(t)
		unlock, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)

		_, err = locker.Lock(ctx, orderID)
		assert.ErrorIs(t, err, appproduction.ErrOrderBusy)

		unlock()
		again, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)
		again()
	})

	t.Run("a lost lease is not released", func(t *testing.T) {
		locker, orderID := newLocker(t)
		key := locker.keyPrefix + orderID.String()
		unlock, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)

		require.NoError(t, client.Set(ctx, key, "other-holder", time.Minute).Err())
		unlock()

		value, err := client.Get(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, "other-holder", value)
	})

	t.Run("failed release is logged", func(t *testing.T) {
		own := redis.NewClient(&redis.Options{Addr: client.Options().Addr})
		core, logs := observer.New(zapcore.WarnLevel)
		locker := NewRedisOrderLocker(own, time.Second, 150*time.Millisecond, zap.New(core))
		orderID := uuid.New()
		t.Cleanup(func() { client.Del(ctx, locker.keyPrefix+orderID.String()) })

		unlock, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)
		require.NoError(t, own.Close())
		unlock()

		entries := logs.FilterMessage("failed to release order lock, lease expires on its own").All()
		require.Len(t, entries, 1)
		assert.Equal(t, orderID.String(), entries[0].ContextMap()["order_id"])
	})
}
