package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache implements Service on a process-local map. Expired entries
// are dropped lazily on read; there is no background sweeper.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

var _ Service = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		var err error
		data, err = json.Marshal(value)
		if err != nil {
			return err
		}
	}

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: expiresAt}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && entry.expired(time.Now()) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	if strPtr, ok := dest.(*string); ok {
		*strPtr = string(entry.data)
		return nil
	}
	return json.Unmarshal(entry.data, dest)
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	now := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, key := range keys {
		if entry, ok := c.entries[key]; ok && !entry.expired(now) {
			return true, nil
		}
	}
	return false, nil
}

func (c *MemoryCache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current int64
	if entry, ok := c.entries[key]; ok && !entry.expired(time.Now()) {
		parsed, err := strconv.ParseInt(string(entry.data), 10, 64)
		if err != nil {
			return 0, err
		}
		current = parsed
	}
	current++
	expiresAt := c.entries[key].expiresAt
	c.entries[key] = memoryEntry{data: []byte(strconv.FormatInt(current, 10)), expiresAt: expiresAt}
	return current, nil
}

func (c *MemoryCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.expired(time.Now()) {
		return false, nil
	}
	entry.expiresAt = time.Now().Add(expiration)
	c.entries[key] = entry
	return true, nil
}
