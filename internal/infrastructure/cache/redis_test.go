package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	// non-zero DB to verify it's set
	c, err := OpenRedis(context.Background(), s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	if v, err := c.Get(ctx, "k").Result(); err != nil || v != "v" {
		t.Fatalf("GET = %q, %v", v, err)
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	// unresolvable host: ping fails without waiting out the timeout
	if _, err := OpenRedis(context.Background(), "not-a-real-host:6379", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNewLocker_ExclusiveUntilRelease(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := OpenRedis(context.Background(), s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	locker := NewLocker(c)
	first, err := locker.Obtain(ctx, "lock:test", time.Minute, nil)
	if err != nil {
		t.Fatalf("first obtain: %v", err)
	}
	if _, err := locker.Obtain(ctx, "lock:test", time.Minute, nil); !errors.Is(err, redislock.ErrNotObtained) {
		t.Fatalf("second obtain: want ErrNotObtained, got %v", err)
	}
	if err := first.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := locker.Obtain(ctx, "lock:test", time.Minute, nil); err != nil {
		t.Fatalf("obtain after release: %v", err)
	}
}
