// Package mockclickhousebatch mocks driver.Batch for snapshot inserts.
package mockclickhousebatch

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

type Batch struct {
	mock.Mock
}

var _ driver.Batch = (*Batch)(nil)

// Append records each column value as its own argument, in insert order.
func (b *Batch) Append(values ...any) error {
	return b.Called(values...).Error(0)
}

func (b *Batch) AppendStruct(v any) error {
	return b.Called(v).Error(0)
}

func (b *Batch) Column(idx int) driver.BatchColumn {
	col, _ := b.Called(idx).Get(0).(driver.BatchColumn)
	return col
}

func (b *Batch) Send() error {
	return b.Called().Error(0)
}

func (b *Batch) Flush() error {
	return b.Called().Error(0)
}

func (b *Batch) Abort() error {
	return b.Called().Error(0)
}

func (b *Batch) IsSent() bool {
	return b.Called().Bool(0)
}
