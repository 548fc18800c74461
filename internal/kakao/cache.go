// README: Redis read-through cache for keyword search results.
package kakao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore is the slice of the redis client the cache consumes.
type CacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedClient serves keyword searches from redis before hitting the API.
// Cache failures are invisible to callers; the lookup falls through to the
// underlying client. Empty results are never cached.
type CachedClient struct {
	*Client
	store CacheStore
	ttl   time.Duration
}

func NewCachedClient(c *Client, store CacheStore, ttl time.Duration) *CachedClient {
	return &CachedClient{Client: c, store: store, ttl: ttl}
}

func searchKey(keyword, categoryCode string) string {
	return "kakao:search:" + categoryCode + ":" + keyword
}

func (c *CachedClient) Search(ctx context.Context, keyword, categoryCode string) (*Place, error) {
	key := searchKey(keyword, categoryCode)

	if raw, err := c.store.Get(ctx, key).Bytes(); err == nil {
		var p Place
		if json.Unmarshal(raw, &p) == nil {
			return &p, nil
		}
	}

	p, err := c.Client.Search(ctx, keyword, categoryCode)
	if err != nil || p == nil {
		return p, err
	}

	if raw, err := json.Marshal(p); err == nil {
		c.store.Set(ctx, key, raw, c.ttl)
	}
	return p, nil
}

// ResolveGenerated mirrors Client.ResolveGenerated on top of the cached
// keyword search.
func (c *CachedClient) ResolveGenerated(ctx context.Context, generatedName, locationHint, categoryCode string) (*Place, error) {
	if locationHint != "" {
		p, err := c.Search(ctx, locationHint, categoryCode)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return c.Search(ctx, generatedName, categoryCode)
}
