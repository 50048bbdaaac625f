package server

import (
	"strings"
	"sync"
	"time"

	"github.com/mj1618/slotjump/internal/model"
)

// WindowLister enumerates the host's windows.
type WindowLister interface {
	Enumerate() ([]model.WindowRef, error)
}

type cacheEntry struct {
	windows   []model.WindowRef
	timestamp time.Time
}

// WindowCache is a TTL cache over window enumerations, keyed by app filter.
type WindowCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewWindowCache creates a new cache. A ttl of 0 disables caching.
func NewWindowCache(ttl time.Duration) *WindowCache {
	return &WindowCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Windows returns the windows whose app name or id contains app (all
// windows when app is empty), from cache when fresh.
func (c *WindowCache) Windows(src WindowLister, app string) ([]model.WindowRef, error) {
	key := strings.ToLower(strings.TrimSpace(app))
	if c.ttl > 0 {
		c.mu.Lock()
		if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
			c.mu.Unlock()
			return entry.windows, nil
		}
		c.mu.Unlock()
	}

	all, err := src.Enumerate()
	if err != nil {
		return nil, err
	}
	windows := filterApp(all, key)

	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[key] = cacheEntry{windows: windows, timestamp: c.now()}
		c.mu.Unlock()
	}
	return windows, nil
}

// InvalidateAll clears the entire cache.
func (c *WindowCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func filterApp(ws []model.WindowRef, app string) []model.WindowRef {
	out := make([]model.WindowRef, 0, len(ws))
	for _, w := range ws {
		if app == "" ||
			strings.Contains(strings.ToLower(w.OwnerAppName), app) ||
			strings.Contains(strings.ToLower(w.OwnerAppID), app) {
			out = append(out, w)
		}
	}
	return out
}
