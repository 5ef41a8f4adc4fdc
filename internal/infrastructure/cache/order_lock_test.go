package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	appproduction "github.com/atelier/backend/internal/application/production"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryOrderLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("serializes the same order", func(t *testing.T) {
		locker := NewMemoryOrderLocker(time.Second)
		orderID := uuid.New()

		var (
			mu      sync.Mutex
			inside  int
			maxSeen int
			wg      sync.WaitGroup
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, orderID)
				if !assert.NoError(t, err) {
					return
				}
				defer unlock()

				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen)
		assert.Empty(t, locker.entries)
	})

	t.Run("different orders do not block each other", func(t *testing.T) {
		locker := NewMemoryOrderLocker(50 * time.Millisecond)
		unlockA, err := locker.Lock(ctx, uuid.New())
		require.NoError(t, err)
		defer unlockA()

		unlockB, err := locker.Lock(ctx, uuid.New())
		require.NoError(t, err)
		unlockB()
	})

	t.Run("times out while held", func(t *testing.T) {
		locker := NewMemoryOrderLocker(20 * time.Millisecond)
		orderID := uuid.New()
		unlock, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)

		_, err = locker.Lock(ctx, orderID)
		assert.ErrorIs(t, err, appproduction.ErrOrderBusy)

		unlock()
		unlock() // second call is a no-op
		again, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)
		again()
	})

	t.Run("cancelled context", func(t *testing.T) {
		locker := NewMemoryOrderLocker(time.Second)
		orderID := uuid.New()
		unlock, err := locker.Lock(ctx, orderID)
		require.NoError(t, err)
		defer unlock()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = locker.Lock(cctx, orderID)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewOrderLocker(t *testing.T) {
	locker, err := NewOrderLocker(config.OrderLockConfig{Backend: "memory", WaitTimeout: time.Second}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryOrderLocker{}, locker)

	_, err = NewOrderLocker(config.OrderLockConfig{Backend: "redis"}, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewOrderLocker(config.OrderLockConfig{Backend: "zookeeper"}, nil, zap.NewNop())
	assert.Error(t, err)
}
