package db

import (
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Cache wraps ristretto and remembers which keys it has handed out so they
// can all be dropped at once when the underlying data changes.
type Cache struct {
	store *ristretto.Cache
	mu    sync.Mutex
	keys  map[string]struct{}
}

func NewCache() (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, keys: make(map[string]struct{})}, nil
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores value and waits for the write to become visible.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.keys[key] = struct{}{}
	c.mu.Unlock()
	c.store.Set(key, value, 1)
	c.store.Wait()
}

func (c *Cache) Del(key string) {
	c.mu.Lock()
	delete(c.keys, key)
	c.mu.Unlock()
	c.store.Del(key)
}

func (c *Cache) ClearAll() {
	c.mu.Lock()
	for key := range c.keys {
		c.store.Del(key)
	}
	c.keys = make(map[string]struct{})
	c.mu.Unlock()
}

func (c *Cache) Close() {
	c.store.Close()
}
