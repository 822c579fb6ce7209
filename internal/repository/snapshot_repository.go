package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"

	"ga4-report-service/internal/model"
)

// SnapshotRepository defines storage operations for archived summaries.
type SnapshotRepository interface {
	// CreateBatch inserts snapshots in a single ClickHouse batch.
	CreateBatch(ctx context.Context, snapshots []model.Snapshot) error

	// FetchRecent returns up to limit snapshots, newest first.
	FetchRecent(ctx context.Context, limit int) ([]model.Snapshot, error)
}

type snapshotRepository struct {
	conn clickhouse.Conn
}

// NewSnapshotRepository creates a SnapshotRepository backed by ClickHouse.
func NewSnapshotRepository(conn clickhouse.Conn) SnapshotRepository {
	return &snapshotRepository{conn: conn}
}

const insertSnapshotQuery = `INSERT INTO report_snapshots (id, property_id, total_users, avg_engagement_seconds, payload, fetched_at)`

const selectRecentSnapshotsQuery = `
	SELECT id, property_id, total_users, avg_engagement_seconds, payload, fetched_at
	FROM report_snapshots
	ORDER BY fetched_at DESC
	LIMIT ?
`

type snapshotRecord struct {
	ID                   uuid.UUID `ch:"id"`
	PropertyID           string    `ch:"property_id"`
	TotalUsers           uint64    `ch:"total_users"`
	AvgEngagementSeconds float64   `ch:"avg_engagement_seconds"`
	Payload              string    `ch:"payload"`
	FetchedAt            time.Time `ch:"fetched_at"`
}

func (r *snapshotRepository) CreateBatch(ctx context.Context, snapshots []model.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSnapshotQuery)
	if err != nil {
		return fmt.Errorf("prepare snapshot batch: %w", err)
	}

	for _, s := range snapshots {
		if err := batch.Append(
			s.ID,
			s.PropertyID,
			s.TotalUsers,
			s.AvgEngagementSeconds,
			string(s.Summary),
			s.FetchedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append snapshot %s: %w", s.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send snapshot batch: %w", err)
	}
	return nil
}

func (r *snapshotRepository) FetchRecent(ctx context.Context, limit int) ([]model.Snapshot, error) {
	var records []snapshotRecord
	if err := r.conn.Select(ctx, &records, selectRecentSnapshotsQuery, limit); err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}

	snapshots := make([]model.Snapshot, 0, len(records))
	for _, rec := range records {
		snapshots = append(snapshots, model.Snapshot{
			ID:                   rec.ID,
			PropertyID:           rec.PropertyID,
			TotalUsers:           rec.TotalUsers,
			AvgEngagementSeconds: rec.AvgEngagementSeconds,
			Summary:              json.RawMessage(rec.Payload),
			FetchedAt:            rec.FetchedAt,
		})
	}
	return snapshots, nil
}
