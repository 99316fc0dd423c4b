package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/trends-proxy/internal/domain"
)

func TestBoltStoreCachesAndExpiresTopics(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := Settings{
		TTL:             1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(filepath.Join(dir, "cache.db"), s)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if _, ok, err := store.GetTopics(ctx, "AI trends"); err != nil || ok {
		t.Fatalf("expected cache miss, ok=%v err=%v", ok, err)
	}

	topics := []domain.TrendingTopic{{ID: "1", Title: "t", Posts: "Trending", Difficulty: domain.DifficultyHigh}}
	if err := store.PutTopics(ctx, "AI trends", topics); err != nil {
		t.Fatalf("PutTopics: %v", err)
	}

	got, ok, err := store.GetTopics(ctx, "  ai TRENDS ")
	if err != nil || !ok {
		t.Fatalf("expected cache hit on normalised key, ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Title != "t" || got[0].Difficulty != domain.DifficultyHigh {
		t.Fatalf("unexpected cached topics %#v", got)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	if _, ok, err := store.GetTopics(ctx, "AI trends"); err != nil || ok {
		t.Fatalf("expected entry to expire, ok=%v err=%v", ok, err)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore(Settings{Type: "none"})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.PutTopics(context.Background(), "q", nil); err != nil {
		t.Fatalf("noop store PutTopics: %v", err)
	}
	if _, ok, _ := store.GetTopics(context.Background(), "q"); ok {
		t.Fatalf("noop store should never hit")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore(Settings{Type: "memcached"}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore(Settings{Type: TypeBBolt}); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
}
