package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeRoundTrip(t *testing.T, store DurableStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "leme:sessao_id")
	require.NoError(t, err)
	assert.False(t, found, "missing key reads as no session")

	require.NoError(t, store.Set(ctx, "leme:sessao_id", "sess-123"))

	value, found, err := store.Get(ctx, "leme:sessao_id")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "sess-123", value)

	require.NoError(t, store.Set(ctx, "leme:sessao_id", "sess-456"))
	value, _, err = store.Get(ctx, "leme:sessao_id")
	require.NoError(t, err)
	assert.Equal(t, "sess-456", value, "set overwrites")

	require.NoError(t, store.Remove(ctx, "leme:sessao_id"))
	_, found, err = store.Get(ctx, "leme:sessao_id")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key is not an error.
	require.NoError(t, store.Remove(ctx, "leme:sessao_id"))
}

func TestMemoryStore(t *testing.T) {
	storeRoundTrip(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	storeRoundTrip(t, store)
}

func TestRedisStoreSetsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "leme:sessao_id", "sess-123"))
	assert.Equal(t, DefaultTTL, mr.TTL("leme:sessao_id"))

	// An expired slot reads as no session.
	mr.FastForward(DefaultTTL * 2)
	_, found, err := store.Get(ctx, "leme:sessao_id")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	store := NewRedisStoreWithClient(client)
	defer store.Close()

	_, _, err := store.Get(context.Background(), "leme:sessao_id")
	assert.Error(t, err)
}
