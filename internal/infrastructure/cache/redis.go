package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// OpenRedis connects and pings. The client backs idempotency keys and the
// renewal lock, so startup fails fast when redis is unreachable.
func OpenRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	logrus.WithFields(logrus.Fields{"module": "cache", "addr": addr, "db": db}).Info("redis: connected")
	return r, nil
}

// NewLocker builds the distributed lock client on top of r.
func NewLocker(r *redis.Client) *redislock.Client { return redislock.New(r) }
