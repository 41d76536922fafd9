package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisOrderCache holds rendered order detail bodies so repeated reads skip
// the database. Writers invalidate; entries otherwise expire with the TTL.
type RedisOrderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisOrderCache(rdb *redis.Client, ttl time.Duration) *RedisOrderCache {
	return &RedisOrderCache{rdb: rdb, ttl: ttl}
}

func orderKey(id int64) string {
	return "order:detail:" + strconv.FormatInt(id, 10)
}

func (r *RedisOrderCache) Get(ctx context.Context, id int64) ([]byte, bool, error) {
	body, err := r.rdb.Get(ctx, orderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (r *RedisOrderCache) Set(ctx context.Context, id int64, body []byte) error {
	return r.rdb.Set(ctx, orderKey(id), body, r.ttl).Err()
}

func (r *RedisOrderCache) Invalidate(ctx context.Context, id int64) error {
	return r.rdb.Del(ctx, orderKey(id)).Err()
}

var _ usecase.OrderCache = (*RedisOrderCache)(nil)
