package store

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"slate-api/domain"
)

func newTestCache(t *testing.T, board *Board, ttl time.Duration) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSnapshotCache(board, client, ttl), mr
}

func TestSnapshotCacheStoresEncodedSections(t *testing.T) {
	board := NewBoard()
	cache, mr := newTestCache(t, board, time.Minute)
	ctx := context.Background()

	data, err := cache.SectionsJSON(ctx)
	if err != nil {
		t.Fatalf("sections json: %v", err)
	}

	var sections []domain.Section
	if err := sonic.Unmarshal(data, &sections); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(sections) != 1 || sections[0].ID != domain.DefaultSectionID {
		t.Fatalf("unexpected snapshot: %+v", sections)
	}

	if !mr.Exists(sectionsCacheKey) {
		t.Fatal("expected snapshot to be cached")
	}
	if ttl := mr.TTL(sectionsCacheKey); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}
}

func TestSnapshotCacheServesCachedBytes(t *testing.T) {
	board := NewBoard()
	cache, mr := newTestCache(t, board, time.Minute)
	ctx := context.Background()

	if _, err := cache.TasksJSON(ctx); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	mr.Set(tasksCacheKey, `{"stale":true}`)

	data, err := cache.TasksJSON(ctx)
	if err != nil {
		t.Fatalf("tasks json: %v", err)
	}
	if string(data) != `{"stale":true}` {
		t.Fatalf("expected the cached bytes verbatim, got %s", data)
	}
}

func TestSnapshotCacheEvictsOnEveryMutation(t *testing.T) {
	board := NewBoard()
	cache, mr := newTestCache(t, board, time.Minute)
	ctx := context.Background()

	if _, err := cache.BoardJSON(ctx); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if !mr.Exists(boardCacheKey) {
		t.Fatal("expected primed cache")
	}

	board.AddSection("Work")
	if mr.Exists(boardCacheKey) || mr.Exists(sectionsCacheKey) || mr.Exists(tasksCacheKey) {
		t.Fatal("expected eviction after a section mutation")
	}

	if _, err := cache.BoardJSON(ctx); err != nil {
		t.Fatalf("re-prime cache: %v", err)
	}
	board.AddTask(TaskInput{Title: "Report", SectionID: domain.DefaultSectionID})
	if mr.Exists(boardCacheKey) {
		t.Fatal("expected eviction after a task mutation")
	}

	data, err := cache.BoardJSON(ctx)
	if err != nil {
		t.Fatalf("board json: %v", err)
	}
	if !strings.Contains(string(data), "Report") {
		t.Fatalf("snapshot must reflect the mutation, got %s", data)
	}
}

func TestSnapshotCacheWorksWithoutRedis(t *testing.T) {
	board := NewBoard()
	board.AddSection("Work")
	cache := NewSnapshotCache(board, nil, time.Minute)

	data, err := cache.SectionsJSON(context.Background())
	if err != nil {
		t.Fatalf("sections json: %v", err)
	}
	if !strings.Contains(string(data), "Work") {
		t.Fatalf("expected direct read, got %s", data)
	}
}

func TestSnapshotCacheFallsBackOnRedisFailure(t *testing.T) {
	board := NewBoard()
	cache, mr := newTestCache(t, board, time.Minute)

	mr.Close()

	data, err := cache.SectionsJSON(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to the stores, got %v", err)
	}
	if !strings.Contains(string(data), domain.DefaultSectionID) {
		t.Fatalf("unexpected snapshot: %s", data)
	}
}
