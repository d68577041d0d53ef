// internal/domain/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps by-id game lookups in redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a game cache. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func gameKey(id uint) string {
	return fmt.Sprintf("catalog:game:%d", id)
}

// Get returns the cached game, or nil on a miss
func (c *Cache) Get(ctx context.Context, id uint) (*Game, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var game Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Set stores a game with the configured expiration
func (c *Cache) Set(ctx context.Context, game *Game) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gameKey(game.ID), data, c.ttl).Err()
}

// Invalidate drops a cached game
func (c *Cache) Invalidate(ctx context.Context, id uint) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, gameKey(id)).Err()
}
