package identity

import (
	"sync"
	"time"
)

// loginThrottle locks a username out after too many consecutive failures
type loginThrottle struct {
	mu          sync.Mutex
	maxAttempts int
	lockFor     time.Duration
	failures    map[string]*failureRecord
	now         func() time.Time
}

type failureRecord struct {
	count       int
	lockedUntil time.Time
}

func newLoginThrottle(maxAttempts int, lockFor time.Duration) *loginThrottle {
	return &loginThrottle{
		maxAttempts: maxAttempts,
		lockFor:     lockFor,
		failures:    make(map[string]*failureRecord),
		now:         time.Now,
	}
}

// locked reports whether the username is currently locked out
func (t *loginThrottle) locked(username string) bool {
	if t.maxAttempts <= 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.failures[username]
	if !ok {
		return false
	}
	if rec.lockedUntil.IsZero() {
		return false
	}
	if t.now().Before(rec.lockedUntil) {
		return true
	}
	delete(t.failures, username)
	return false
}

// fail records a failure and returns true when it triggered a lock
func (t *loginThrottle) fail(username string) bool {
	if t.maxAttempts <= 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.failures[username]
	if !ok {
		rec = &failureRecord{}
		t.failures[username] = rec
	}
	rec.count++
	if rec.count >= t.maxAttempts {
		rec.lockedUntil = t.now().Add(t.lockFor)
		return true
	}
	return false
}

func (t *loginThrottle) reset(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, username)
}
