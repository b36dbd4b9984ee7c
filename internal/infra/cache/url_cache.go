package cache

import (
	"sync"
	"time"
)

// Entries about to lapse are treated as misses so a caller never hands out a
// URL that dies in flight.
const expirySlack = 30 * time.Second

type entry struct {
	url      string
	expiryAt time.Time
}

// URLCache is a thread-safe cache of presigned download URLs keyed by object
// key. Entries expire with the URL they hold.
type URLCache struct {
	entries map[string]entry
	mutex   sync.RWMutex
}

// NewURLCache creates a new URL cache instance
func NewURLCache() *URLCache {
	return &URLCache{
		entries: make(map[string]entry),
	}
}

// Get retrieves a URL from cache if it has usable lifetime left
func (c *URLCache) Get(key string) (string, bool) {
	c.mutex.RLock()
	e, found := c.entries[key]
	c.mutex.RUnlock()

	if found && time.Now().Add(expirySlack).Before(e.expiryAt) {
		return e.url, true
	}

	return "", false
}

// Set stores a URL in cache with its expiration time
func (c *URLCache) Set(key string, url string, expiryAt time.Time) {
	c.mutex.Lock()
	c.entries[key] = entry{
		url:      url,
		expiryAt: expiryAt,
	}
	c.mutex.Unlock()
}

// Invalidate drops the entry for a key. Called when the underlying object is
// deleted so a later object under the same key cannot serve a stale URL.
func (c *URLCache) Invalidate(key string) {
	c.mutex.Lock()
	delete(c.entries, key)
	c.mutex.Unlock()
}

// Clear removes expired entries from cache
func (c *URLCache) Clear() {
	c.mutex.Lock()
	for key, e := range c.entries {
		if time.Now().After(e.expiryAt) {
			delete(c.entries, key)
		}
	}
	c.mutex.Unlock()
}
