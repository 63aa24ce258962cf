package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blockpoker/server/internal/database"
	"github.com/blockpoker/server/internal/game"
	"github.com/blockpoker/server/internal/models"
	"github.com/google/uuid"
)

// Store persists completed hands. A nil *Store is valid and archives
// nothing, so the server can run without a database.
type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// SaveHand archives a finished hand's snapshot log under its hand ID.
func (s *Store) SaveHand(ctx context.Context, handID, tableID uuid.UUID, tableName string, wentToShowdown bool, snapshots []*game.Snapshot) error {
	if s == nil {
		return nil
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshots: %w", err)
	}

	record := &models.HandRecord{
		ID:             handID,
		TableID:        tableID,
		TableName:      tableName,
		WentToShowdown: wentToShowdown,
		Snapshots:      data,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save hand record: %w", err)
	}
	return nil
}

// RecentHands returns the latest archived hands for a table, newest first.
func (s *Store) RecentHands(ctx context.Context, tableID uuid.UUID, limit int) ([]models.HandRecord, error) {
	if s == nil {
		return nil, nil
	}

	var records []models.HandRecord
	err := s.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query hand records: %w", err)
	}
	return records, nil
}
