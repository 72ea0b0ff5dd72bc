package logic

import (
	"context"
	"math"
	"strings"

	"github.com/hoopsight/projection-api/internal/models"
)

// ValidPlayerID reports whether player can name a data source entry. Empty
// names and anything that could escape a directory are rejected.
func ValidPlayerID(player string) bool {
	if strings.TrimSpace(player) == "" || len(player) > 128 {
		return false
	}
	if strings.ContainsAny(player, `/\`) || strings.Contains(player, "..") {
		return false
	}
	return !strings.ContainsRune(player, 0)
}

// LoadGameLog reads and cleans a player's game log. The returned log may be
// empty when every row was dropped; callers decide how to report that.
func LoadGameLog(ctx context.Context, src GameLogSource, player string) (models.PlayerLog, error) {
	if !ValidPlayerID(player) {
		return models.PlayerLog{}, ErrPlayerNotFound
	}
	rows, err := src.GameLog(ctx, player)
	if err != nil {
		return models.PlayerLog{}, err
	}
	return CleanGameLog(player, rows), nil
}

// CleanGameLog drops rows missing any of points, assists or rebounds. Rows are
// never repaired or defaulted; order is preserved.
func CleanGameLog(player string, rows []models.RawGameRow) models.PlayerLog {
	log := models.PlayerLog{Player: player, Games: make([]models.GameRecord, 0, len(rows))}
	for _, r := range rows {
		if !r.Complete() || !finite(*r.Points) || !finite(*r.Assists) || !finite(*r.Rebounds) {
			rowsDropped.Inc()
			continue
		}
		log.Games = append(log.Games, models.GameRecord{
			GameNumber: r.GameNumber,
			Date:       r.Date,
			Opponent:   strings.TrimSpace(r.Opponent),
			Points:     *r.Points,
			Assists:    *r.Assists,
			Rebounds:   *r.Rebounds,
		})
	}
	return log
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
