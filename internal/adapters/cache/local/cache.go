package local

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache implementa ports/cache.Cache en memoria del proceso.
// Se usa cuando no hay REDIS_URL (una sola instancia).
type Cache struct {
	store *gocache.Cache
}

func New(defaultTTL, cleanup time.Duration) *Cache {
	return &Cache{store: gocache.New(defaultTTL, cleanup)}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := c.store.Get(key)
	if !found {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
