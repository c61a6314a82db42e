package cache

import (
	"sync"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"
)

type cacheEntry struct {
	identity  domain.Identity
	expiresAt time.Time
}

// IdentityCache provides thread-safe in-memory identity caching with TTL.
// Implements domain.IdentityCache.
type IdentityCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewIdentityCache creates a new identity cache with the specified TTL.
func NewIdentityCache(ttl time.Duration) *IdentityCache {
	c := &IdentityCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop(time.Minute)
	return c
}

// Get retrieves the identity cached for a session token.
func (c *IdentityCache) Get(token string) (*domain.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[token]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	identity := entry.identity
	return &identity, true
}

// Set stores the identity resolved for a session token.
func (c *IdentityCache) Set(token string, identity domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[token] = &cacheEntry{
		identity:  identity,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete drops the entry for a session token.
func (c *IdentityCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, token)
}

// Close stops the cleanup loop.
func (c *IdentityCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *IdentityCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for token, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, token)
		}
	}
}

func (c *IdentityCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}
