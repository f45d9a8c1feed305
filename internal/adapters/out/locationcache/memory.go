// Package locationcache stores the last known position of each rider. Positions
// are overwritten by newer ones and expire after a TTL; no history is kept.
package locationcache

import (
	"context"
	"sync"
	"time"

	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"
)

const (
	DefaultTTL      = 30 * time.Second
	janitorInterval = time.Minute
)

type entry struct {
	position   ports.Position
	expiration time.Time
}

// MemoryCache is a process-local LocationCache used when no Redis is configured.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[int64]entry
}

var _ ports.LocationCache = (*MemoryCache)(nil)

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, now: time.Now, entries: make(map[int64]entry)}
}

func (c *MemoryCache) Put(_ context.Context, position ports.Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[position.UserID] = entry{position: position, expiration: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, userID int64) (ports.Position, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok || c.now().After(e.expiration) {
		delete(c.entries, userID)
		return ports.Position{}, errs.NewObjectNotFoundError("location", userID)
	}
	return e.position, nil
}

// Size returns the number of stored positions, including expired ones not yet collected.
func (c *MemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartJanitor removes expired positions periodically until ctx is done.
func (c *MemoryCache) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *MemoryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for id, e := range c.entries {
		if now.After(e.expiration) {
			delete(c.entries, id)
		}
	}
}
