package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idemp:hr:"

// idempKey scopes a record to the concrete path and the acting employee, so
// one Ax-Request-Id reused across two vacation requests never replays.
type idempKey struct {
	method    string
	path      string
	actorID   string
	requestID string
}

func (k idempKey) String() string {
	return keyPrefix + strings.ToLower(k.method) + ":" + k.path + ":" + k.actorID + ":" + k.requestID
}

// entryStore keeps one JSON record per key in redis.
type entryStore struct {
	rdb *redis.Client
}

// reserve claims the key with an in-progress record. false means someone
// else holds it already.
func (s entryStore) reserve(ctx context.Context, k idempKey, e idempEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("encode idempotency entry: %w", err)
	}
	return s.rdb.SetNX(ctx, k.String(), payload, provisionalLockTTL).Result()
}

func (s entryStore) load(ctx context.Context, k idempKey) (idempEntry, error) {
	var e idempEntry
	v, err := s.rdb.Get(ctx, k.String()).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return idempEntry{}, fmt.Errorf("decode idempotency entry: %w", err)
	}
	return e, nil
}

// commit replaces the reservation with the final response for ttl.
func (s entryStore) commit(ctx context.Context, k idempKey, e idempEntry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode idempotency entry: %w", err)
	}
	return s.rdb.Set(ctx, k.String(), payload, ttl).Err()
}

func (s entryStore) release(ctx context.Context, k idempKey) error {
	return s.rdb.Del(ctx, k.String()).Err()
}
