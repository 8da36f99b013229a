// Package cache wraps go-cache as the report cache.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Cache struct {
	c *gocache.Cache
}

// New creates a cache with the given TTL. A cleanup interval <= 0 disables
// the background janitor; expired items are then dropped on read.
func New(ttl, cleanup time.Duration) *Cache {
	return &Cache{c: gocache.New(ttl, cleanup)}
}

func (c *Cache) Get(key string) (any, bool) { return c.c.Get(key) }

func (c *Cache) Set(key string, v any) { c.c.SetDefault(key, v) }

func (c *Cache) Len() int { return c.c.ItemCount() }

func (c *Cache) Flush() { c.c.Flush() }
