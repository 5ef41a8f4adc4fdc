package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisTokenBlacklist_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	b := NewRedisTokenBlacklist(client)
	ctx := context.Background()

	err := b.Revoke(ctx, "s1", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to revoke session")

	revoked, err := b.IsRevoked(ctx, "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check session blacklist")
	assert.False(t, revoked)

	// nothing to store for an already expired session
	assert.NoError(t, b.Revoke(ctx, "s1", 0))
}

func TestRedisTokenBlacklist_Live(t *testing.T) {
	addr := os.Getenv("ATELIER_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	b := NewRedisTokenBlacklist(client)
	sessionID := uuid.NewString()
	defer client.Del(ctx, b.keyPrefix+sessionID)

	revoked, err := b.IsRevoked(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, sessionID, time.Minute))
	revoked, err = b.IsRevoked(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, b.keyPrefix+sessionID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
