package store

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Snapshot cache keys.
const (
	sectionsCacheKey = "snapshot:sections"
	tasksCacheKey    = "snapshot:tasks"
	boardCacheKey    = "snapshot:board"
)

// SnapshotCache serves encoded JSON snapshots of the board's read side,
// keeping them in Redis so hot list endpoints skip re-encoding. The cache
// subscribes to both stores and evicts on every change notification. A nil
// client or any Redis error degrades to a direct read without failing; the
// cache is volatile acceleration, never the source of truth.
type SnapshotCache struct {
	board *Board
	redis *redis.Client
	ttl   time.Duration
}

// NewSnapshotCache creates a caching read layer over the board. With a nil
// client every call encodes directly from the stores.
func NewSnapshotCache(board *Board, client *redis.Client, ttl time.Duration) *SnapshotCache {
	if board == nil {
		panic("store.NewSnapshotCache: board is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &SnapshotCache{board: board, redis: client, ttl: ttl}
	if client != nil {
		board.SubscribeSections(c.evict)
		board.SubscribeTasks(c.evict)
	}
	return c
}

// SectionsJSON returns the encoded section list.
func (c *SnapshotCache) SectionsJSON(ctx context.Context) ([]byte, error) {
	return c.snapshot(ctx, sectionsCacheKey, func() any { return c.board.Sections() })
}

// TasksJSON returns the encoded task list.
func (c *SnapshotCache) TasksJSON(ctx context.Context) ([]byte, error) {
	return c.snapshot(ctx, tasksCacheKey, func() any { return c.board.Tasks() })
}

// BoardJSON returns the encoded board projection.
func (c *SnapshotCache) BoardJSON(ctx context.Context) ([]byte, error) {
	return c.snapshot(ctx, boardCacheKey, func() any { return c.board.View() })
}

func (c *SnapshotCache) snapshot(ctx context.Context, key string, load func() any) ([]byte, error) {
	if data, ok := c.loadFromCache(ctx, key); ok {
		return data, nil
	}

	data, err := sonic.Marshal(load())
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, data)
	return data, nil
}

func (c *SnapshotCache) loadFromCache(ctx context.Context, key string) ([]byte, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the stores without failing.
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	return data, true
}

func (c *SnapshotCache) store(ctx context.Context, key string, data []byte) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *SnapshotCache) evict() {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(context.Background(), sectionsCacheKey, tasksCacheKey, boardCacheKey).Result()
}
