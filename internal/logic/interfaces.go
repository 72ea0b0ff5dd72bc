package logic

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hoopsight/projection-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// GameLogSource is a read-only store of per-player game logs.
type GameLogSource interface {
	Name() string
	// ListPlayers returns the identifiers GameLog accepts, sorted.
	ListPlayers(ctx context.Context) ([]string, error)
	// GameLog returns the player's rows in chronological order, or
	// ErrPlayerNotFound when the source has nothing for the player.
	GameLog(ctx context.Context, player string) ([]models.RawGameRow, error)
}

// ProjectionService runs the projection pipeline for API and CLI callers.
type ProjectionService interface {
	Players(ctx context.Context) ([]string, error)
	Summary(ctx context.Context, player string) (*models.SummaryResponse, error)
	Project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error)
	ProjectRoster(ctx context.Context, req models.RosterRequest) (*models.RosterResponse, error)
}
