package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hoopsight/projection-api/internal/config"
	"github.com/hoopsight/projection-api/internal/handlers"
	"github.com/hoopsight/projection-api/internal/inference"
	"github.com/hoopsight/projection-api/internal/logic"
	"github.com/hoopsight/projection-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, logger); err != nil {
		sugar.Fatalw("Server exited with error", "error", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// backends holds the optional connections selected by configuration.
type backends struct {
	ch    driver.Conn
	pg    *pgxpool.Pool
	redis *redis.Client
}

func (b *backends) Close() {
	if b.ch != nil {
		b.ch.Close()
	}
	if b.pg != nil {
		b.pg.Close()
	}
	if b.redis != nil {
		b.redis.Close()
	}
}

func connect(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{}

	if cfg.ClickHouseURL != "" {
		opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
		}
		if b.ch, err = clickhouse.Open(opts); err != nil {
			return nil, fmt.Errorf("open clickhouse: %w", err)
		}
	}

	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		b.pg = pool
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		b.redis = redis.NewClient(opts)
	}

	return b, nil
}

func gameLogSource(cfg *config.Config, b *backends) logic.GameLogSource {
	switch cfg.GameLogSource {
	case config.SourceClickHouse:
		return logic.NewClickHouseSource(b.ch)
	case config.SourcePostgres:
		return logic.NewPostgresSource(b.pg)
	default:
		return logic.NewCSVSource(cfg.GameLogDir)
	}
}

func loadModel(ctx context.Context, cfg *config.Config, b *backends, logger *zap.Logger) (inference.Model, error) {
	switch cfg.ModelSource {
	case config.ModelRedis:
		return inference.LoadLinearModelFromRedis(ctx, b.redis, cfg.ModelRedisKey)
	case config.ModelRemote:
		return inference.NewRemoteModel(cfg.ModelURL, cfg.ModelTimeout, logger), nil
	default:
		return inference.LoadLinearModel(cfg.ModelPath)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	// The model is loaded once and shared read-only by every request
	model, err := loadModel(ctx, cfg, b, logger)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	source := gameLogSource(cfg, b)
	svc := logic.NewProjectionService(source, model, logger, cfg.RosterConcurrency)

	hcfg := handlers.Config{
		Postgres:   b.pg,
		Redis:      b.redis,
		Logger:     logger,
		Projection: svc,
	}

	var pool *worker.Pool
	if b.ch != nil {
		hcfg.ClickHouse = b.ch
		pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    b.ch,
			Logger:        logger,
		})
		pool.Start(ctx)
		hcfg.WorkerPool = pool
	}

	h := handlers.New(hcfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(sugar))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Server started",
			"port", cfg.Port,
			"gamelogSource", source.Name(),
			"modelSource", cfg.ModelSource,
			"ingest", pool != nil,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		sugar.Infow("Shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if pool != nil {
		pool.Stop()
	}

	sugar.Info("Server stopped")
	return nil
}

// requestLogger logs one line per request with zap.
func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Infow("Request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"requestId", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
