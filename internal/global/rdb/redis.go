package rdb

import (
	"context"
	"net"
	"time"

	"activity-signup/config"
	"activity-signup/internal/global/sentry/tracing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Client 未配置 REDIS_HOST 时为 nil
var Client *redis.Client

var ErrLocked = errors.New("lock is held by another process")

func Init() error {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return nil
	}
	port := cfg.Port
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return errors.Wrap(err, "redis ping")
	}
	Client = client
	return nil
}

// 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock 基于 SET NX PX 的互斥锁，拿不到锁返回 ErrLocked
func Lock(ctx context.Context, client redis.UniversalClient, key string, ttl time.Duration) (unlock func(), err error) {
	token := uuid.NewString()
	ok, err := client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "acquire lock")
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = unlockScript.Run(ctx, client, []string{key}, token).Err()
	}, nil
}
