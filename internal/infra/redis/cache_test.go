package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "marketplace"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:cat=7", []byte(`{"total":5}`), time.Minute))

	got, err := cache.Get(ctx, "search:cat=7")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"total":5}`), got)
}

func TestCache_GetMissing(t *testing.T) {
	cache, _ := setupCache(t)

	got, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, got)
}

func TestCache_Expiry(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 30*time.Second))

	// Advance the clock past the TTL; the entry must read as a miss.
	mr.FastForward(time.Minute)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_KeysAreNamespaced(t *testing.T) {
	cache, mr := setupCache(t)

	require.NoError(t, cache.Set(context.Background(), "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("marketplace:k"))
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing key is a no-op.
	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestCache_Clear_OnlyOwnNamespace(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, mr.Set("other:key", "kept"))

	require.NoError(t, cache.Clear(ctx))

	got, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, mr.Exists("other:key"), "foreign namespaces must survive a clear")
}

func TestCache_Clear_Empty(t *testing.T) {
	cache, _ := setupCache(t)
	assert.NoError(t, cache.Clear(context.Background()))
}
