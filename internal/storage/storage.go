package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/trends-proxy/internal/domain"
)

// Package storage provides the optional result cache for mapped trends.

// Store caches mapped topics by upstream query.
type Store interface {
	Close() error
	GetTopics(ctx context.Context, query string) ([]domain.TrendingTopic, bool, error)
	PutTopics(ctx context.Context, query string, topics []domain.TrendingTopic) error
}

// Settings selects and configures a cache backend.
type Settings struct {
	Type            string
	BBoltPath       string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"
	TypeRedis = "redis"

	defaultTTL             = 5 * time.Minute
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(s Settings) (Store, error) {
	typ := strings.TrimSpace(strings.ToLower(s.Type))
	s = normalizeSettings(s)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(s.BBoltPath) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(s.BBoltPath, s)
	case TypeRedis:
		if strings.TrimSpace(s.RedisAddr) == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return openRedis(s), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeSettings(s Settings) Settings {
	if s.TTL <= 0 {
		s.TTL = defaultTTL
	}
	if s.CleanupInterval <= 0 {
		s.CleanupInterval = defaultCleanupInterval
	}
	return s
}

// cacheKey normalises the query so "AI trends" and " ai trends" share an entry.
func cacheKey(query string) string {
	return "trends:" + strings.ToLower(strings.TrimSpace(query))
}

type noopStore struct{}

func (noopStore) Close() error { return nil }
func (noopStore) GetTopics(context.Context, string) ([]domain.TrendingTopic, bool, error) {
	return nil, false, nil
}
func (noopStore) PutTopics(context.Context, string, []domain.TrendingTopic) error { return nil }
