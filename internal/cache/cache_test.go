package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icpcsp/compreg/internal/config"
)

var testClient *redis.Client

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		fmt.Println("docker unavailable, redis tests will be skipped:", err)
		os.Exit(m.Run())
	}

	resource, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		fmt.Println("could not start redis:", err)
		os.Exit(m.Run())
	}
	_ = resource.Expire(120)

	addr := resource.GetHostPort("6379/tcp")
	if err := pool.Retry(func() error {
		testClient = redis.NewClient(&redis.Options{Addr: addr})
		return testClient.Ping(context.Background()).Err()
	}); err != nil {
		fmt.Println("redis never became ready:", err)
		testClient = nil
	}

	code := m.Run()

	if testClient != nil {
		_ = testClient.Close()
	}
	_ = pool.Purge(resource)
	os.Exit(code)
}

func requireRedis(t *testing.T) *Store {
	t.Helper()
	if testClient == nil {
		t.Skip("redis not available")
	}
	require.NoError(t, testClient.FlushDB(context.Background()).Err())
	return NewStore(testClient, time.Minute)
}

type university struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestOpen_DisabledWithoutAddr(t *testing.T) {
	store, err := Open(context.Background(), &config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = Open(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestStore_SetGetDelete(t *testing.T) {
	store := requireRedis(t)
	ctx := context.Background()

	want := []university{{ID: 1, Name: "UNSW"}, {ID: 2, Name: "USyd"}}
	require.NoError(t, store.Set(ctx, "universities:list", want))

	var got []university
	ok, err := store.Get(ctx, "universities:list", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, store.Delete(ctx, "universities:list"))
	ok, err = store.Get(ctx, "universities:list", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MissIsNotAnError(t *testing.T) {
	store := requireRedis(t)

	var got []university
	ok, err := store.Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_TTLApplied(t *testing.T) {
	store := requireRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", university{ID: 3}))
	ttl, err := testClient.TTL(ctx, keyPrefix+"k").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
