package cache

import (
	"context"
	"encoding/json"
	"time"

	"recipebox/internal/observability"
)

// Aside implements the cache-aside pattern over JSON values. When the Redis
// client is unavailable it degrades to calling load directly. A load error is
// returned as-is and nothing is cached; cache write failures are ignored
// because the loaded value is already in dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client == nil {
		observability.CacheHits.WithLabelValues("bypass").Inc()
		return load()
	}

	if val, err := client.Get(ctx, key).Result(); err == nil {
		if jsonErr := json.Unmarshal([]byte(val), dest); jsonErr == nil {
			observability.CacheHits.WithLabelValues("hit").Inc()
			return nil
		}
		// Corrupt entry, drop it and fall through to the loader.
		client.Del(ctx, key)
	}
	observability.CacheHits.WithLabelValues("miss").Inc()

	if err := load(); err != nil {
		return err
	}

	if data, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
