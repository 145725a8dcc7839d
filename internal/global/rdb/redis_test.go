package rdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// 需要真实 redis：TEST_REDIS_ADDR=localhost:6379 go test ./internal/global/rdb
func TestLock(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	key := "test:lock:" + t.Name()

	unlock, err := Lock(ctx, client, key, time.Minute)
	require.NoError(t, err)

	_, err = Lock(ctx, client, key, time.Minute)
	require.ErrorIs(t, err, ErrLocked)

	unlock()
	unlock2, err := Lock(ctx, client, key, time.Minute)
	require.NoError(t, err)
	unlock2()
}
