// internal/storage/token_store_test.go
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.Save(ctx, "s2", "tok-2", time.Time{}))
	require.NoError(t, store.Save(ctx, "s1", "tok-1", time.Now().Add(time.Hour)))
	assert.ErrorIs(t, store.Save(ctx, "", "tok", time.Time{}), ErrEmptySession)

	tok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedisTokenStoreTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniRedis(t)
	store := NewRedisTokenStore(client)

	require.NoError(t, store.Save(ctx, "s1", "tok-1", time.Now().Add(10*time.Minute)))
	assert.True(t, mr.Exists("proconnect:token:s1"))
	ttl := mr.TTL("proconnect:token:s1")
	assert.True(t, ttl > 9*time.Minute && ttl <= 10*time.Minute, "unexpected ttl %v", ttl)

	tok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	mr.FastForward(11 * time.Minute)
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedisTokenStoreExpiredTokenNotStored(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniRedis(t)
	store := NewRedisTokenStore(client)

	require.NoError(t, store.Save(ctx, "s1", "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("proconnect:token:s1"))
}

func TestRedisTokenStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniRedis(t)
	store := NewRedisTokenStore(client)

	require.NoError(t, store.Save(ctx, "a", "tok-a", time.Time{}))
	require.NoError(t, store.Save(ctx, "b", "tok-b", time.Time{}))
	require.NoError(t, mr.Set("unrelated", "x"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, store.Delete(ctx, "a"))
	assert.False(t, mr.Exists("proconnect:token:a"))
	assert.True(t, mr.Exists("proconnect:token:b"))
}

func TestMirroredTokenStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniRedis(t)
	primary := NewMemoryTokenStore()
	store := NewMirroredTokenStore(primary, NewRedisTokenStore(client))

	require.NoError(t, store.Save(ctx, "s1", "tok-1", time.Now().Add(time.Hour)))
	assert.True(t, mr.Exists("proconnect:token:s1"))

	// A fresh primary (gateway restart) is repopulated from the mirror.
	restarted := NewMemoryTokenStore()
	store = NewMirroredTokenStore(restarted, NewRedisTokenStore(client))
	tok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	tok, err = restarted.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("proconnect:token:s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestNewTokenStore(t *testing.T) {
	_, ok := NewTokenStore(nil).(*MemoryTokenStore)
	assert.True(t, ok, "nil client should yield a memory store")

	_, client := setupMiniRedis(t)
	_, ok = NewTokenStore(client).(*MirroredTokenStore)
	assert.True(t, ok, "redis client should yield a mirrored store")
}
