package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/hooks/internal/testutil"
)

func TestRedis(t *testing.T) {
	addr := testutil.RedisAddress(t)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	runStoreTests(t, NewRedis(client, "hooks:test:", time.Second))
}

func TestPostgres(t *testing.T) {
	dsn := testutil.PostgresDSN(t)

	s, err := OpenPostgres(dsn, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	runStoreTests(t, s)
}

func TestMongo(t *testing.T) {
	uri := testutil.MongoURI(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, client, err := ConnectMongo(ctx, uri, "hooks_test", "kv", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	runStoreTests(t, s)
}

func TestRedisWriteBehind(t *testing.T) {
	addr := testutil.RedisAddress(t)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	backend := NewRedis(client, "hooks:wb:", time.Second)
	w := NewWriteBehind(backend)

	runStoreTests(t, w)
	require.NoError(t, w.Close())

	value, ok, err := backend.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "100", value)
}
