package logic

import (
	"context"
	"sort"
	"sync"

	"github.com/hoopsight/projection-api/internal/inference"
	"github.com/hoopsight/projection-api/internal/models"
)

// MockSource is an in-memory GameLogSource. It is safe for the concurrent
// reads ProjectRoster makes.
type MockSource struct {
	Logs map[string][]models.RawGameRow
	Err  error

	mu        sync.Mutex
	gameCalls int
}

// GameCalls reports how many times GameLog was called.
func (m *MockSource) GameCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameCalls
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) ListPlayers(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	players := make([]string, 0, len(m.Logs))
	for p := range m.Logs {
		players = append(players, p)
	}
	sort.Strings(players)
	return players, nil
}

func (m *MockSource) GameLog(ctx context.Context, player string) ([]models.RawGameRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	rows, ok := m.Logs[player]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return rows, nil
}

// echoModel predicts the rolling averages plus a fixed offset, which keeps
// expected values easy to compute by hand.
func echoModel(offset float64) inference.Model {
	return inference.ModelFunc(func(ctx context.Context, x [][]float64) ([][]float64, error) {
		out := make([][]float64, len(x))
		for i, row := range x {
			out[i] = []float64{row[0] + offset, row[1] + offset, row[2] + offset}
		}
		return out, nil
	})
}

func f64(v float64) *float64 { return &v }

func row(opp string, pts, ast, trb float64) models.RawGameRow {
	return models.RawGameRow{Opponent: opp, Points: f64(pts), Assists: f64(ast), Rebounds: f64(trb)}
}

func game(opp string, pts, ast, trb float64) models.GameRecord {
	return models.GameRecord{Opponent: opp, Points: pts, Assists: ast, Rebounds: trb}
}

// outlierLog is twelve identical games against BOS followed by a zero line
// against LAL.
func outlierLog() models.PlayerLog {
	log := models.PlayerLog{Player: "tatum"}
	for i := 0; i < 12; i++ {
		log.Games = append(log.Games, game("BOS", 20, 5, 8))
	}
	log.Games = append(log.Games, game("LAL", 0, 0, 0))
	return log
}
