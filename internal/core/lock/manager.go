// Package lock implements the per-lead advisory lock of §5: all mutation
// of a given lead is serialised through a lock keyed by
// (tenant_id, channel_identity), acquired at the top of process() and
// released on return.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const redisLockTTL = 20 * time.Second

// entry is a single lead's in-process lock plus a waiter count so idle
// entries can be evicted, mirroring the sync.Mutex-guarded consumer map
// pattern used for per-tenant workers elsewhere in the pack.
type entry struct {
	mu      sync.Mutex
	waiters int
}

// Manager is a process-wide map of per-lead locks with idle eviction, plus
// an optional Redis-backed cross-pod advisory lock so duplicate webhooks
// landing on different pods still serialise (§5, §9). The in-process lock
// is the fast path; Redis is best-effort — the Entity Store's row-level
// lock remains authoritative for schedule-slot booking.
type Manager struct {
	mu       sync.Mutex
	entries  map[string]*entry
	redisSvc redis.ServiceInterface // nil disables the cross-pod layer
	podID    string
}

// NewManager creates a lock manager. redisSvc may be nil, in which case
// locking is purely in-process (acceptable for a single-instance
// deployment, degraded but safe for a horizontally-scaled one since the
// Entity Store still guards the one operation that truly cannot race:
// schedule-slot booking).
func NewManager(redisSvc redis.ServiceInterface) *Manager {
	return &Manager{
		entries:  make(map[string]*entry),
		redisSvc: redisSvc,
		podID:    uuid.NewString(),
	}
}

func key(tenantID, channelIdentity string) string {
	return fmt.Sprintf("%s:%s", tenantID, channelIdentity)
}

// WithLock runs fn while holding the per-lead lock. It always releases the
// lock before returning, even if fn panics.
func (m *Manager) WithLock(ctx context.Context, tenantID, channelIdentity string, fn func() error) error {
	k := key(tenantID, channelIdentity)
	e := m.acquireEntry(k)
	defer m.releaseEntry(k, e)

	e.mu.Lock()
	defer e.mu.Unlock()

	if m.redisSvc != nil {
		lockKey := "lock:" + k
		ok, err := m.redisSvc.SetNX(ctx, lockKey, m.podID, redisLockTTL)
		if err != nil {
			logger.Base().Warn("cross-pod lock unavailable, proceeding with in-process lock only",
				zap.String("lead_key", k), zap.Error(err))
		} else if !ok {
			return fmt.Errorf("lead %s is locked by another instance", k)
		} else {
			defer func() { _ = m.redisSvc.DelValue(ctx, lockKey) }()
		}
	}

	return fn()
}

func (m *Manager) acquireEntry(k string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[k]
	if !ok {
		e = &entry{}
		m.entries[k] = e
	}
	e.waiters++
	return e
}

func (m *Manager) releaseEntry(k string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.waiters--
	if e.waiters <= 0 {
		delete(m.entries, k)
	}
}

// Size reports the number of leads currently holding an entry, for tests
// and metrics.
func (m *Manager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
