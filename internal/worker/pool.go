// Package worker implements the buffered worker pool used for game log ingestion.
// HTTP handlers enqueue rows and return immediately; workers batch rows into
// ClickHouse on size or interval and flush what they hold on shutdown.
package worker

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/hoopsight/projection-api/internal/models"
)

// Prometheus metrics
var (
	rowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamelog_rows_ingested_total",
		Help: "Total number of game log rows accepted into the queue",
	})

	rowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamelog_rows_processed_total",
		Help: "Total number of game log rows written by workers",
	})

	rowsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamelog_rows_failed_total",
		Help: "Total number of game log rows that failed to write",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gamelog_worker_queue_depth",
		Help: "Current depth of the ingest queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gamelog_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	rowsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamelog_rows_load_shed_total",
		Help: "Total number of rows dropped because the queue was full",
	})
)

const insertGameLogs = `
	INSERT INTO game_logs (
		id, ingested_at, player, season, game_number, game_date,
		opponent, points, assists, rebounds, raw_json
	)
`

// Job represents a unit of work for the worker pool
type Job struct {
	Row       *models.GameLogEvent
	RawJSON   string
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async game log writes
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool. Rows already queued are flushed.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a row to the queue. It returns false without blocking when the
// queue is full or the pool has stopped.
func (p *Pool) Enqueue(row *models.GameLogEvent) bool {
	rawJSON, _ := json.Marshal(row)

	job := Job{
		Row:       row,
		RawJSON:   string(rawJSON),
		Timestamp: time.Now(),
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue row (pool stopped)", "error", r)
		}
	}()

	select {
	case <-p.ctx.Done():
		rowsLoadShed.Inc()
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		rowsIngested.Inc()
		return true
	default:
		rowsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			rowsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch written", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			rowsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes a batch of rows in a single insert
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx := context.Background()
	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertGameLogs)
	if err != nil {
		return err
	}

	for _, job := range batch {
		row := toClickHouseGameLog(job)
		err := chBatch.Append(
			row.ID,
			row.IngestedAt,
			row.Player,
			row.Season,
			row.GameNumber,
			row.GameDate,
			row.Opponent,
			row.Points,
			row.Assists,
			row.Rebounds,
			row.RawJSON,
		)
		if err != nil {
			p.logger.Warnw("Failed to append row to batch", "error", err, "player", row.Player)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return err
	}
	return nil
}

func toClickHouseGameLog(job Job) *models.ClickHouseGameLog {
	row := job.Row
	gameNumber := row.GameNumber
	if gameNumber < 0 {
		gameNumber = 0
	}
	return &models.ClickHouseGameLog{
		ID:         uuid.New(),
		IngestedAt: job.Timestamp,
		Player:     strings.TrimSpace(row.Player),
		Season:     strings.TrimSpace(row.Season),
		GameNumber: uint32(gameNumber),
		GameDate:   strings.TrimSpace(row.Date),
		Opponent:   strings.ToUpper(strings.TrimSpace(row.Opponent)),
		Points:     row.Points,
		Assists:    row.Assists,
		Rebounds:   row.Rebounds,
		RawJSON:    job.RawJSON,
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
