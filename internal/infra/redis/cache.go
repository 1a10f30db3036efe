package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saverfox/saverfox/internal/module/mission"
	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/pkg/logger"
)

const (
	// CatalogTTL is the TTL for cached catalog lists
	CatalogTTL = 10 * time.Minute

	// catalogCharactersKey and catalogFoodsKey hold the full catalog
	// lists as JSON arrays
	catalogCharactersKey = "catalog:characters"
	catalogFoodsKey      = "catalog:foods"

	// missionKeyPrefix is the prefix for daily mission cache keys
	missionKeyPrefix = "mission:daily:"
)

// Cache is a Redis-backed cache for the read-mostly shop catalog and
// the day's mission. It implements shop.CatalogCache and
// mission.DailyCache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewCache creates a new catalog and mission cache
func NewCache(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    CatalogTTL,
		logger: log.WithField("component", "cache"),
	}
}

// NewCacheWithTTL creates a new cache with a custom catalog TTL
func NewCacheWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "cache"),
	}
}

// GetCharacters returns the cached character catalog
func (c *Cache) GetCharacters(ctx context.Context) ([]*shop.Character, bool, error) {
	var characters []*shop.Character
	ok, err := c.get(ctx, catalogCharactersKey, &characters)
	return characters, ok, err
}

// SetCharacters caches the character catalog
func (c *Cache) SetCharacters(ctx context.Context, characters []*shop.Character) error {
	return c.set(ctx, catalogCharactersKey, characters, c.ttl)
}

// GetFoods returns the cached food catalog
func (c *Cache) GetFoods(ctx context.Context) ([]*shop.Food, bool, error) {
	var foods []*shop.Food
	ok, err := c.get(ctx, catalogFoodsKey, &foods)
	return foods, ok, err
}

// SetFoods caches the food catalog
func (c *Cache) SetFoods(ctx context.Context, foods []*shop.Food) error {
	return c.set(ctx, catalogFoodsKey, foods, c.ttl)
}

// GetDaily returns the cached mission for a UTC day key
func (c *Cache) GetDaily(ctx context.Context, day time.Time) (*mission.Mission, bool, error) {
	var m mission.Mission
	ok, err := c.get(ctx, missionKey(day), &m)
	if !ok || err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

// SetDaily caches the mission until the end of its UTC day, so a stale
// mission can never outlive the day it was active on
func (c *Cache) SetDaily(ctx context.Context, day time.Time, m *mission.Mission) error {
	ttl := time.Until(day.AddDate(0, 0, 1))
	if ttl <= 0 {
		return nil
	}
	return c.set(ctx, missionKey(day), m, ttl)
}

func missionKey(day time.Time) string {
	return missionKeyPrefix + day.UTC().Format("2006-01-02")
}

func (c *Cache) get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "key", key)
		return false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "key", key, "error", err)
		return false, fmt.Errorf("failed to get cached value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	c.logger.Debug("cache hit", "key", key)
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cached value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "key", key, "error", err)
		return fmt.Errorf("failed to set cached value: %w", err)
	}

	return nil
}

// InvalidateCatalog drops both catalog lists
func (c *Cache) InvalidateCatalog(ctx context.Context) error {
	return c.client.Del(ctx, catalogCharactersKey, catalogFoodsKey).Err()
}
