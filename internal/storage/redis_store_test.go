package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samvad-hq/trends-proxy/internal/domain"
)

// fakeRedis is an in-memory stand-in recording the last Set.
type fakeRedis struct {
	data    map[string]string
	lastTTL time.Duration
	getErr  error
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.data == nil {
		f.data = make(map[string]string)
	}
	f.data[key] = string(value.([]byte))
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := &fakeRedis{}
	store := &redisStore{rdb: rdb, ttl: 90 * time.Second}

	if _, ok, err := store.GetTopics(ctx, "AI trends"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	if err := store.PutTopics(ctx, "AI trends", []domain.TrendingTopic{{ID: "1", Title: "x"}}); err != nil {
		t.Fatalf("PutTopics: %v", err)
	}
	if rdb.lastTTL != 90*time.Second {
		t.Fatalf("expected ttl to be forwarded, got %v", rdb.lastTTL)
	}
	if _, ok := rdb.data["trends:ai trends"]; !ok {
		t.Fatalf("unexpected keys %#v", rdb.data)
	}

	got, ok, err := store.GetTopics(ctx, "AI trends")
	if err != nil || !ok || len(got) != 1 || got[0].Title != "x" {
		t.Fatalf("unexpected hit result %#v ok=%v err=%v", got, ok, err)
	}
}

func TestRedisStoreSurfacesErrors(t *testing.T) {
	store := &redisStore{rdb: &fakeRedis{getErr: errors.New("conn refused")}}
	if _, _, err := store.GetTopics(context.Background(), "q"); err == nil {
		t.Fatalf("expected error from redis get")
	}
}
