package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appproduction "github.com/atelier/backend/internal/application/production"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MemoryOrderLocker serializes mutations per order inside one process
type MemoryOrderLocker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
	wait    time.Duration
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

// NewMemoryOrderLocker creates a locker; wait bounds how long Lock blocks
func NewMemoryOrderLocker(wait time.Duration) *MemoryOrderLocker {
	return &MemoryOrderLocker{
		entries: make(map[uuid.UUID]*lockEntry),
		wait:    wait,
	}
}

// Lock blocks until the order is free, the wait timeout passes, or ctx ends
func (l *MemoryOrderLocker) Lock(ctx context.Context, orderID uuid.UUID) (func(), error) {
	l.mu.Lock()
	entry, ok := l.entries[orderID]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.entries[orderID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	ctx, cancel := withWait(ctx, l.wait)
	defer cancel()

	select {
	case entry.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.sem
				l.release(orderID, entry)
			})
		}, nil
	case <-ctx.Done():
		l.release(orderID, entry)
		return nil, busyError(ctx.Err())
	}
}

func (l *MemoryOrderLocker) release(orderID uuid.UUID, entry *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, orderID)
	}
}

// RedisOrderLocker serializes mutations per order across instances with a
// SET NX lease. The lease expires after ttl if the holder dies.
type RedisOrderLocker struct {
	client    redis.UniversalClient
	ttl       time.Duration
	wait      time.Duration
	retry     time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// compare-and-delete so a holder never releases a lease it lost
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedisOrderLocker creates a Redis-backed locker
func NewRedisOrderLocker(client redis.UniversalClient, ttl, wait time.Duration, logger *zap.Logger) *RedisOrderLocker {
	return &RedisOrderLocker{
		client:    client,
		ttl:       ttl,
		wait:      wait,
		retry:     50 * time.Millisecond,
		keyPrefix: "atelier:order:lock:",
		logger:    logger,
	}
}

// Lock polls for the lease until it is acquired or the wait timeout passes
func (l *RedisOrderLocker) Lock(ctx context.Context, orderID uuid.UUID) (func(), error) {
	key := l.keyPrefix + orderID.String()
	token := uuid.NewString()

	ctx, cancel := withWait(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("failed to acquire order lock: %w", err)
		}
		if ok {
			return func() {
				// release with a fresh context; the caller's may be done
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
					l.logger.Warn("failed to release order lock, lease expires on its own",
						zap.String("order_id", orderID.String()),
						zap.Duration("ttl", l.ttl),
						zap.Error(err))
				}
			}, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, busyError(ctx.Err())
		}
	}
}

func withWait(ctx context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if wait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, wait)
}

func busyError(cause error) error {
	if errors.Is(cause, context.Canceled) {
		return cause
	}
	return appproduction.ErrOrderBusy
}

var (
	_ appproduction.OrderLocker = (*MemoryOrderLocker)(nil)
	_ appproduction.OrderLocker = (*RedisOrderLocker)(nil)
)
