package models

import (
	"time"

	"github.com/google/uuid"
)

// HandRecord archives one completed hand: the ordered snapshot log the
// engine produced, serialized as JSON, for replay and audit.
type HandRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TableID        uuid.UUID `gorm:"type:uuid;index" json:"table_id"`
	TableName      string    `gorm:"size:255" json:"table_name"`
	WentToShowdown bool      `json:"went_to_showdown"`
	Snapshots      []byte    `gorm:"type:jsonb" json:"snapshots"`
	CreatedAt      time.Time `json:"created_at"`
}
