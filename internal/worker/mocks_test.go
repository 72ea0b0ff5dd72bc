package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing. Every batch it
// prepares records the rows appended to it.
type MockClickHouseConn struct {
	driver.Conn
	SendErr error

	mu      sync.Mutex
	Batches []*MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &MockBatch{Query: query, sendErr: m.SendErr, mu: &m.mu}
	m.Batches = append(m.Batches, b)
	return b, nil
}

// SentRows returns every row from batches that were sent successfully.
func (m *MockClickHouseConn) SentRows() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows [][]interface{}
	for _, b := range m.Batches {
		if b.sent {
			rows = append(rows, b.Appended...)
		}
	}
	return rows
}

type MockBatch struct {
	driver.Batch
	Query    string
	Appended [][]interface{}
	sendErr  error
	sent     bool
	mu       *sync.Mutex
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended = append(m.Appended, v)
	return nil
}

func (m *MockBatch) Send() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = true
	return nil
}

func (m *MockBatch) Abort() error { return nil }
