package logic

import (
	"context"
	"fmt"

	"github.com/hoopsight/projection-api/internal/models"
)

// PostgresSource reads game logs from a game_logs table in Postgres.
type PostgresSource struct {
	pg PgPool
}

func NewPostgresSource(pg PgPool) *PostgresSource {
	return &PostgresSource{pg: pg}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := s.pg.Query(ctx, `SELECT DISTINCT player FROM game_logs ORDER BY player`)
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

func (s *PostgresSource) GameLog(ctx context.Context, player string) ([]models.RawGameRow, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT game_number, COALESCE(game_date, ''), opponent, points, assists, rebounds
		FROM game_logs
		WHERE player = $1
		ORDER BY game_number, id
	`, player)
	if err != nil {
		return nil, fmt.Errorf("query game log: %w", err)
	}
	defer rows.Close()

	var out []models.RawGameRow
	for rows.Next() {
		var row models.RawGameRow
		if err := rows.Scan(&row.GameNumber, &row.Date, &row.Opponent, &row.Points, &row.Assists, &row.Rebounds); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
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
