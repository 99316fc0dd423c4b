package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samvad-hq/trends-proxy/internal/domain"
)

// redisClient is the subset of *redis.Client the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// redisStore keeps topics as JSON strings with a native redis TTL.
type redisStore struct {
	rdb redisClient
	ttl time.Duration
}

func openRedis(s Settings) Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})
	return &redisStore{rdb: rdb, ttl: s.TTL}
}

func (r *redisStore) Close() error { return r.rdb.Close() }

func (r *redisStore) GetTopics(ctx context.Context, query string) ([]domain.TrendingTopic, bool, error) {
	b, err := r.rdb.Get(ctx, cacheKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var topics []domain.TrendingTopic
	if err := json.Unmarshal(b, &topics); err != nil {
		return nil, false, fmt.Errorf("decode cached topics: %w", err)
	}
	return topics, true, nil
}

func (r *redisStore) PutTopics(ctx context.Context, query string, topics []domain.TrendingTopic) error {
	b, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}
	if err := r.rdb.Set(ctx, cacheKey(query), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
