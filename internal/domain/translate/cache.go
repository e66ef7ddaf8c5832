package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"echominds-server-go/internal/domain/text"
)

// Cache memoizes translations in redis so repeated runs over the same
// text skip the provider round trip.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(addr string, db int, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		ttl: ttl,
	}
}

// key hashes the full translation request so content length never leaks
// into key size.
func key(content string, source, target text.Language) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", source, target, content)))
	return "translate:" + hex.EncodeToString(sum[:])
}

// Get returns a cached translation and whether it was present. Redis
// errors are treated as misses.
func (c *Cache) Get(ctx context.Context, content string, source, target text.Language) (string, bool) {
	val, err := c.client.Get(ctx, key(content, source, target)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a translation for the configured TTL. Failures are ignored;
// the cache is an optimization, not a source of truth.
func (c *Cache) Set(ctx context.Context, content string, source, target text.Language, translated string) {
	c.client.Set(ctx, key(content, source, target), translated, c.ttl)
}

func (c *Cache) Close() error {
	return c.client.Close()
}
