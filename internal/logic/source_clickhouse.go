package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/hoopsight/projection-api/internal/models"
)

// ClickHouseSource reads game logs written by the ingest worker.
type ClickHouseSource struct {
	ch driver.Conn
}

func NewClickHouseSource(ch driver.Conn) *ClickHouseSource {
	return &ClickHouseSource{ch: ch}
}

func (s *ClickHouseSource) Name() string { return "clickhouse" }

func (s *ClickHouseSource) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := s.ch.Query(ctx, `SELECT DISTINCT player FROM game_logs ORDER BY player`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *ClickHouseSource) GameLog(ctx context.Context, player string) ([]models.RawGameRow, error) {
	query := `
		SELECT
			game_number,
			game_date,
			opponent,
			points,
			assists,
			rebounds
		FROM game_logs
		WHERE player = ?
		ORDER BY game_number, ingested_at
	`
	rows, err := s.ch.Query(ctx, query, player)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	defer rows.Close()

	var out []models.RawGameRow
	for rows.Next() {
		var (
			gameNumber uint32
			row        models.RawGameRow
		)
		if err := rows.Scan(&gameNumber, &row.Date, &row.Opponent, &row.Points, &row.Assists, &row.Rebounds); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		row.GameNumber = int(gameNumber)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrPlayerNotFound
	}
	return out, nil
}
