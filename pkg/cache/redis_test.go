package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	n := int64(0)
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, f.err)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := &RedisCache{client: fake, prefix: "sr:"}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("miss: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("frames"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if fake.ttl["sr:k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttl["sr:k"])
	}
	data, hit, err := c.Get(ctx, "k")
	if !hit || err != nil || string(data) != "frames" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok := fake.data["sr:k"]; ok {
		t.Error("Delete left the key behind")
	}
}

func TestRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	c := &RedisCache{client: fake}

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("Get should surface backend errors")
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err == nil {
		t.Error("Set should surface backend errors")
	}
}
