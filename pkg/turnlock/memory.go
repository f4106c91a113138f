package turnlock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryLocker holds turn slots in process memory, for single-instance
// deployments and tests where Redis is not configured.
type MemoryLocker struct {
	mu    sync.Mutex
	slots *cache.Cache
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		slots: cache.New(TTL, 1*time.Minute),
	}
}

func (l *MemoryLocker) Acquire(_ context.Context, sessionID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := sessionID.String()
	if _, held := l.slots.Get(key); held {
		return ErrTurnInFlight
	}
	l.slots.Set(key, struct{}{}, cache.DefaultExpiration)
	return nil
}

func (l *MemoryLocker) Release(_ context.Context, sessionID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.slots.Delete(sessionID.String())
	return nil
}
