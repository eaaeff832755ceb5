package application

import (
	"sync"
	"time"
)

// leadCache stores recently computed lead lists keyed by calendar day to
// avoid rescanning and re-sorting the client roster on every call-list
// request. Entries age out on a short TTL since client edits elsewhere can
// change the result.
type leadCache struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]leadCacheEntry
}

type leadCacheEntry struct {
	leads     []Lead
	expiresAt time.Time
}

func newLeadCache(ttl time.Duration, now func() time.Time) *leadCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &leadCache{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]leadCacheEntry),
	}
}

func (c *leadCache) Get(key string) ([]Lead, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneLeads(entry.leads), true
}

func (c *leadCache) Store(key string, leads []Lead) {
	if c == nil {
		return
	}
	cloned := cloneLeads(leads)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = leadCacheEntry{leads: cloned, expiresAt: expiry}
}

func (c *leadCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]leadCacheEntry)
	c.mu.Unlock()
}

func cloneLeads(leads []Lead) []Lead {
	if len(leads) == 0 {
		return nil
	}
	out := make([]Lead, len(leads))
	copy(out, leads)
	return out
}
