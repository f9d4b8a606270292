package probe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// GoRedisClient adapts go-redis to the StatusClient port.
type GoRedisClient struct {
	rdb *redis.Client
}

func NewGoRedisClient(addr, password string, timeout time.Duration) *GoRedisClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoRedisClient{
		rdb: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DialTimeout:  timeout,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			MaxRetries:   -1, // single point-in-time check, no client-side retries
		}),
	}
}

func (g *GoRedisClient) Ping(ctx context.Context) (string, error) {
	return g.rdb.Ping(ctx).Result()
}

func (g *GoRedisClient) Info(ctx context.Context) (string, error) {
	return g.rdb.Info(ctx).Result()
}

func (g *GoRedisClient) Close() error { return g.rdb.Close() }
