package cache

import (
	"context"
	"time"

	"github.com/nekodev/skillring/pkg/observability"
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// instrumented reports cache traffic to observability hooks.
type instrumented struct {
	Cache
	keyType string
	hooks   observability.CacheHooks
}

// Instrument wraps c so every Get and Set is reported to the registered
// cache hooks under keyType (e.g. "frames", "svg").
func Instrument(c Cache, keyType string) Cache {
	return &instrumented{Cache: c, keyType: keyType, hooks: observability.Cache()}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err != nil {
		return data, hit, err
	}
	if hit {
		c.hooks.OnCacheHit(ctx, c.keyType)
	} else {
		c.hooks.OnCacheMiss(ctx, c.keyType)
	}
	return data, hit, nil
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	c.hooks.OnCacheSet(ctx, c.keyType, len(data))
	return nil
}
