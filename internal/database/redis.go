package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pageza/recipebox/frontend/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a new Redis client for the rate limiter. It returns
// nil, nil when no Redis server is configured.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}

	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s", opts.Addr)
	return client, nil
}

// RedisOptions builds client options, preferring REDIS_URL over host and port
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
