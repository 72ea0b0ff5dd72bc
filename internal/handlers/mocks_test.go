package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/hoopsight/projection-api/internal/models"
)

// Mocks

type MockIngestQueue struct {
	EnqueueFunc func(row *models.GameLogEvent) bool

	mu   sync.Mutex
	Rows []*models.GameLogEvent
}

func (m *MockIngestQueue) Enqueue(row *models.GameLogEvent) bool {
	if m.EnqueueFunc != nil && !m.EnqueueFunc(row) {
		return false
	}
	m.mu.Lock()
	m.Rows = append(m.Rows, row)
	m.mu.Unlock()
	return true
}

func (m *MockIngestQueue) QueueDepth() int { return len(m.Rows) }

type MockProjectionService struct {
	PlayersFunc       func(ctx context.Context) ([]string, error)
	SummaryFunc       func(ctx context.Context, player string) (*models.SummaryResponse, error)
	ProjectFunc       func(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error)
	ProjectRosterFunc func(ctx context.Context, req models.RosterRequest) (*models.RosterResponse, error)
}

func (m *MockProjectionService) Players(ctx context.Context) ([]string, error) {
	if m.PlayersFunc != nil {
		return m.PlayersFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectionService) Summary(ctx context.Context, player string) (*models.SummaryResponse, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, player)
	}
	return &models.SummaryResponse{Player: player}, nil
}

func (m *MockProjectionService) Project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error) {
	if m.ProjectFunc != nil {
		return m.ProjectFunc(ctx, req)
	}
	return &models.ProjectionResponse{SummaryResponse: models.SummaryResponse{Player: req.Player}}, nil
}

func (m *MockProjectionService) ProjectRoster(ctx context.Context, req models.RosterRequest) (*models.RosterResponse, error) {
	if m.ProjectRosterFunc != nil {
		return m.ProjectRosterFunc(ctx, req)
	}
	return &models.RosterResponse{}, nil
}

type MockClickHouseConn struct {
	driver.Conn
	PingErr error
}

func (m *MockClickHouseConn) Ping(ctx context.Context) error { return m.PingErr }

var errClickHouseDown = errors.New("clickhouse: connection refused")

func newTestHandler(svc *MockProjectionService, pool IngestQueue) *Handler {
	cfg := Config{Projection: svc, Logger: zap.NewNop()}
	if pool != nil {
		cfg.WorkerPool = pool
	}
	return New(cfg)
}
