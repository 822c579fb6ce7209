package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an archived summary.
type Snapshot struct {
	ID                   uuid.UUID       `json:"id"`
	PropertyID           string          `json:"propertyId"`
	TotalUsers           uint64          `json:"totalUsers"`
	AvgEngagementSeconds float64         `json:"avgEngagementSeconds"`
	Summary              json.RawMessage `json:"summary"`
	FetchedAt            time.Time       `json:"fetchedAt"`
}

// SnapshotList is returned by /snapshots.
type SnapshotList struct {
	Snapshots []Snapshot `json:"snapshots"`
}
