package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS report_snapshots
(
	id                      UUID,
	property_id             String,
	total_users             UInt64,
	avg_engagement_seconds  Float64,
	payload                 String,
	fetched_at              DateTime64(3, 'UTC')
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(fetched_at)
ORDER BY (property_id, fetched_at)
`

// RunMigrations ensures the snapshot table exists.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	if err := conn.Exec(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
