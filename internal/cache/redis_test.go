package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/edu-platform/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	require.NoError(t, cache.Set(ctx, "user:1", expected, time.Minute))

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "k"))

	var out int
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetCorruptedValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var out testStruct
	_, err := cache.Get(context.Background(), "bad", &out)
	assert.Error(t, err)
}

func TestInitServer_Unreachable(t *testing.T) {
	_, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestRevocations(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()
	r := NewRevocations(cache, 2*time.Hour)

	_, found, err := r.RevokedAt(ctx, "u1", "1")
	require.NoError(t, err)
	assert.False(t, found)

	at := time.Date(2025, 6, 1, 12, 30, 15, 0, time.UTC)
	require.NoError(t, r.MarkRevoked(ctx, "u1", "1", at))

	got, found, err := r.RevokedAt(ctx, "u1", "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, at.Equal(got))
	assert.Equal(t, 2*time.Hour, mr.TTL(RevocationKey("u1", "1")))

	_, found, err = r.RevokedAt(ctx, "u1", "2")
	require.NoError(t, err)
	assert.False(t, found)

	mr.FastForward(2*time.Hour + time.Second)
	_, found, err = r.RevokedAt(ctx, "u1", "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocalRevocations(t *testing.T) {
	r := NewLocalRevocations(16, time.Hour)
	ctx := context.Background()

	at := time.Date(2025, 6, 1, 12, 30, 15, 500, time.UTC)
	require.NoError(t, r.MarkRevoked(ctx, "u1", "1", at))

	got, found, err := r.RevokedAt(ctx, "u1", "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, at.Truncate(time.Second), got)

	_, found, _ = r.RevokedAt(ctx, "u2", "1")
	assert.False(t, found)
}

func TestPing(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
