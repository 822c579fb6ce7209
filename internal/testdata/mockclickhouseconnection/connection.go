// Package mockclickhouseconnection provides a testify mock of clickhouse.Conn
// for the snapshot repository and migration tests.
package mockclickhouseconnection

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

type Connection struct {
	mock.Mock
}

var _ clickhouse.Conn = (*Connection)(nil)

// Exec records the query arguments flattened after ctx and query, so
// expectations read On("Exec", ctx, query, arg1, arg2...).
func (c *Connection) Exec(ctx context.Context, query string, args ...any) error {
	return c.Called(append([]any{ctx, query}, args...)...).Error(0)
}

func (c *Connection) PrepareBatch(ctx context.Context, query string) (driver.Batch, error) {
	ret := c.Called(ctx, query)
	batch, _ := ret.Get(0).(driver.Batch)
	return batch, ret.Error(1)
}

func (c *Connection) AsyncInsert(ctx context.Context, query string, wait bool) error {
	return c.Called(ctx, query, wait).Error(0)
}

// Select records args as a single slice; use Run to populate dest.
func (c *Connection) Select(ctx context.Context, dest any, query string, args ...any) error {
	return c.Called(ctx, dest, query, args).Error(0)
}

func (c *Connection) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	ret := c.Called(ctx, query, args)
	rows, _ := ret.Get(0).(driver.Rows)
	return rows, ret.Error(1)
}

func (c *Connection) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	row, _ := c.Called(ctx, query, args).Get(0).(driver.Row)
	return row
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Called(ctx).Error(0)
}

func (c *Connection) ServerVersion() (*driver.ServerVersion, error) {
	ret := c.Called()
	version, _ := ret.Get(0).(*driver.ServerVersion)
	return version, ret.Error(1)
}

func (c *Connection) Contributors() []string {
	contributors, _ := c.Called().Get(0).([]string)
	return contributors
}

func (c *Connection) Stats() driver.Stats {
	stats, _ := c.Called().Get(0).(driver.Stats)
	return stats
}

func (c *Connection) Close() error {
	return c.Called().Error(0)
}
