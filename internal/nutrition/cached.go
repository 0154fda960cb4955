package nutrition

import (
	"context"
	"strconv"
	"strings"
	"time"

	"caltrack/internal/cache"
)

const (
	lookupCacheKeyPrefix = "nutrition:"
	lookupCacheTTL       = 24 * time.Hour
)

// CachedLookup is a read-through cache in front of another Lookup. The same
// food text resolved twice hits the external API once; cache misses caused by
// an unavailable redis simply fall through to the wrapped lookup.
type CachedLookup struct {
	next  Lookup
	cache *cache.Client
}

// NewCachedLookup wraps a lookup with the redis cache.
func NewCachedLookup(next Lookup, cache *cache.Client) *CachedLookup {
	return &CachedLookup{next: next, cache: cache}
}

// ResolveCalories serves from cache when possible, otherwise delegates and
// caches successful results. Failures are never cached.
func (l *CachedLookup) ResolveCalories(ctx context.Context, text string) (int, error) {
	key := cacheKey(text)
	if data, _ := l.cache.Get(ctx, key); data != nil {
		if calories, err := strconv.Atoi(string(data)); err == nil {
			return calories, nil
		}
	}

	calories, err := l.next.ResolveCalories(ctx, text)
	if err != nil {
		return 0, err
	}

	_ = l.cache.Set(ctx, key, []byte(strconv.Itoa(calories)), lookupCacheTTL)
	return calories, nil
}

func cacheKey(text string) string {
	return lookupCacheKeyPrefix + strings.ToLower(strings.TrimSpace(text))
}
