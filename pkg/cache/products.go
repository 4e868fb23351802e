package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/redis/go-redis/v9"
)

const productsKey = "storefront:products:all"

// ProductCache keeps the full product list in a single Redis key.
type ProductCache struct {
	client     *redis.Client
	expiration time.Duration
}

// NewProductCache creates a cache whose entries expire after expiration.
func NewProductCache(client *redis.Client, expiration time.Duration) *ProductCache {
	return &ProductCache{
		client:     client,
		expiration: expiration,
	}
}

// NewRedisClient parses url, connects and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Get returns the cached list. ok is false on a cache miss.
func (c *ProductCache) Get(ctx context.Context) ([]models.Product, bool, error) {
	data, err := c.client.Get(ctx, productsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached products: %w", err)
	}
	return products, true, nil
}

// Set stores the list.
func (c *ProductCache) Set(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	if err := c.client.Set(ctx, productsKey, data, c.expiration).Err(); err != nil {
		return fmt.Errorf("failed to cache products: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}
