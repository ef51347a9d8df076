// internal/service/session/cache.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/swayamn72/Aegis2.0/internal/domain/session"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "session:"

// Cache is a Redis read-through cache for sessions. Entries expire with
// the session itself; revocations delete eagerly so a revoked session is
// never served from cache.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*session.Session, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// Stale or corrupt entry: drop it and treat as a miss.
		c.rdb.Del(ctx, cacheKey(id))
		return nil, false, nil
	}
	return &sess, true, nil
}

func (c *Cache) Set(ctx context.Context, sess *session.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(sess.ID), raw, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, ids ...uuid.UUID) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cacheKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
