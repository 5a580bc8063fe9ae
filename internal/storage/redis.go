// internal/storage/redis.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AbdulAhad210904/Pro-connect/config"
)

// ConnectRedis opens the Redis client used to mirror session credentials.
// Returns nil, nil when no REDIS_URL is configured.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		customLog.Println("Storage: REDIS_URL not set, credentials are kept in memory only.")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		customLog.Warnf("Storage: Failed to ping redis at %s: %v", opts.Addr, err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	customLog.Printf("Storage: Redis connection successful (%s).", opts.Addr)
	return client, nil
}

// NewTokenStore builds the credential store for the gateway: memory only, or
// memory mirrored into Redis when a client is available.
func NewTokenStore(client *redis.Client) TokenStore {
	memory := NewMemoryTokenStore()
	if client == nil {
		return memory
	}
	return NewMirroredTokenStore(memory, NewRedisTokenStore(client))
}
