package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps round catalogs in redis for a short TTL so the schedule page
// does not hit postgres on every load.
type Cache struct{ R *redis.Client }

func NewCache(r *redis.Client) *Cache { return &Cache{R: r} }

func keyRound(round string) string { return "catalog:round:" + round }

func (c *Cache) GetRound(ctx context.Context, round string, dst *[]Fixture) (bool, error) {
	b, err := c.R.Get(ctx, keyRound(round)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetRound(ctx context.Context, round string, fs []Fixture, ttl time.Duration) error {
	b, _ := json.Marshal(fs)
	return c.R.Set(ctx, keyRound(round), b, ttl).Err()
}
