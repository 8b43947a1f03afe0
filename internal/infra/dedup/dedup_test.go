package dedup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeRedis struct {
	seen map[string]bool
	err  error
	ttl  time.Duration
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	f.ttl = expiration
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if f.seen[key] {
		return redis.NewBoolResult(false, nil)
	}
	f.seen[key] = true
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if f.seen[k] {
			delete(f.seen, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestFilter_IsNew(t *testing.T) {
	rdb := &fakeRedis{seen: map[string]bool{}}
	f := NewFilter(rdb)

	first, err := f.IsNew(context.Background(), "msg:1")
	assert.NoError(t, err)
	assert.True(t, first)

	again, err := f.IsNew(context.Background(), "msg:1")
	assert.NoError(t, err)
	assert.False(t, again)

	other, _ := f.IsNew(context.Background(), "msg:2")
	assert.True(t, other)

	assert.True(t, rdb.seen[keyPrefix+"msg:1"])
	assert.Equal(t, DefaultTTL, rdb.ttl)
}

func TestFilter_RedisError(t *testing.T) {
	f := NewFilter(&fakeRedis{err: errors.New("connection refused")})

	_, err := f.IsNew(context.Background(), "msg:1")

	assert.ErrorContains(t, err, "connection refused")
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://not-redis")

	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestFilter_ForgetReleasesKey(t *testing.T) {
	rdb := &fakeRedis{seen: map[string]bool{}}
	f := NewFilter(rdb)
	ctx := context.Background()

	first, _ := f.IsNew(ctx, "msg:1")
	assert.True(t, first)

	assert.NoError(t, f.Forget(ctx, "msg:1"))
	assert.False(t, rdb.seen[keyPrefix+"msg:1"])

	again, err := f.IsNew(ctx, "msg:1")
	assert.NoError(t, err)
	assert.True(t, again)
}

func TestFilter_ForgetRedisError(t *testing.T) {
	f := NewFilter(&fakeRedis{err: errors.New("connection refused")})

	assert.ErrorContains(t, f.Forget(context.Background(), "msg:1"), "connection refused")
}
