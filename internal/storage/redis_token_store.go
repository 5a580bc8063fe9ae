// internal/storage/redis_token_store.go
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "proconnect:token:" // proconnect:token:{session_id} -> bearer token
	defaultTTL     = 24 * time.Hour      // used when the token carries no exp
)

// RedisTokenStore persists credentials in Redis with a TTL matching the
// token's remaining lifetime, so Redis drops them once they expire.
type RedisTokenStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, now: time.Now}
}

func (r *RedisTokenStore) tokenKey(sessionID string) string {
	return tokenKeyPrefix + sessionID
}

func (r *RedisTokenStore) ttl(expiresAt time.Time) time.Duration {
	if expiresAt.IsZero() {
		return defaultTTL
	}
	return expiresAt.Sub(r.now())
}

func (r *RedisTokenStore) Save(ctx context.Context, sessionID, token string, expiresAt time.Time) error {
	if sessionID == "" {
		return ErrEmptySession
	}
	ttl := r.ttl(expiresAt)
	if ttl <= 0 {
		// Already expired: make sure nothing stale is left behind.
		return r.Delete(ctx, sessionID)
	}
	if err := r.client.Set(ctx, r.tokenKey(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *RedisTokenStore) Load(ctx context.Context, sessionID string) (string, error) {
	token, err := r.client.Get(ctx, r.tokenKey(sessionID)).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (r *RedisTokenStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.tokenKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// List scans the token keyspace and returns the session ids found.
func (r *RedisTokenStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, tokenKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), tokenKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan tokens: %w", err)
	}
	return ids, nil
}
