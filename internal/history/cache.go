package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blockpoker/server/internal/game"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	snapshotCachePrefix = "table_snapshot:"
	snapshotTTL         = 1 * time.Hour
)

// Cache keeps the latest table snapshot in Redis so observers joining
// mid-hand can be brought up to date without replaying the hand.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// SetSnapshot caches the latest snapshot for a table.
func (c *Cache) SetSnapshot(ctx context.Context, tableID uuid.UUID, snap *game.Snapshot) error {
	key := snapshotCachePrefix + tableID.String()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, key, data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the cached snapshot for a table, or nil on a miss.
func (c *Cache) GetSnapshot(ctx context.Context, tableID uuid.UUID) (*game.Snapshot, error) {
	key := snapshotCachePrefix + tableID.String()

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached snapshot: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Invalidate removes the cached snapshot for a table.
func (c *Cache) Invalidate(ctx context.Context, tableID uuid.UUID) error {
	key := snapshotCachePrefix + tableID.String()
	return c.client.Del(ctx, key).Err()
}
