package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"StockLens/internal/model"
)

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore caches series in Redis, letting several instances share one
// warm cache.
type RedisStore struct {
	client *goredis.Client
}

// NewRedisStore creates a Redis store and pings the server.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[INFO] redis cache connected: %s", cfg.Addr)
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Get(ctx context.Context, ticker string, days int) (*model.Series, bool, error) {
	raw, err := s.client.Get(ctx, key(ticker, days)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis cache get: %w", err)
	}

	var bars []model.Bar
	if err := json.Unmarshal([]byte(raw), &bars); err != nil {
		return nil, false, fmt.Errorf("redis cache decode: %w", err)
	}
	return &model.Series{Ticker: ticker, Bars: bars}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, series *model.Series, days int, ttl time.Duration) error {
	raw, err := json.Marshal(series.Bars)
	if err != nil {
		return fmt.Errorf("redis cache encode: %w", err)
	}
	if err := s.client.Set(ctx, key(series.Ticker, days), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
