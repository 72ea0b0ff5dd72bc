// Command importer loads a directory of game log CSV files into the API's
// ingest endpoint, one request per chunk of rows.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/hoopsight/projection-api/internal/logic"
	"github.com/hoopsight/projection-api/internal/models"
)

func main() {
	dataDir := flag.String("data", "data", "directory of <player>.csv game logs")
	apiURL := flag.String("url", "http://localhost:8080/api/v1/ingest/gamelogs", "ingest endpoint")
	season := flag.String("season", "", "season label stored with every row")
	batch := flag.Int("batch", 200, "rows per request")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	imp := &importer{
		url:    *apiURL,
		season: *season,
		batch:  *batch,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: sugar,
	}

	total, err := imp.importDir(context.Background(), *dataDir)
	if err != nil {
		sugar.Fatalw("Import failed", "error", err)
	}
	sugar.Infow("Import finished", "rows", total)
}

type importer struct {
	url    string
	season string
	batch  int
	client *http.Client
	logger *zap.SugaredLogger
}

// importDir sends every player's rows and returns how many the API accepted.
func (imp *importer) importDir(ctx context.Context, dir string) (int, error) {
	players, err := logic.NewCSVSource(dir).ListPlayers(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, player := range players {
		events, err := imp.readPlayer(filepath.Join(dir, player+".csv"), player)
		if err != nil {
			imp.logger.Warnw("Skipping player", "player", player, "error", err)
			continue
		}

		for start := 0; start < len(events); start += imp.batch {
			end := min(start+imp.batch, len(events))
			resp, err := imp.send(ctx, events[start:end])
			if err != nil {
				return total, fmt.Errorf("send %s: %w", player, err)
			}
			total += resp.Processed
			if resp.Rejected > 0 {
				imp.logger.Warnw("Rows rejected", "player", player, "rejected", resp.Rejected)
			}
		}
		imp.logger.Infow("Imported player", "player", player, "rows", len(events))
	}
	return total, nil
}

func (imp *importer) readPlayer(path, player string) ([]models.GameLogEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := logic.ParseGameLogCSV(f)
	if err != nil {
		return nil, err
	}

	events := make([]models.GameLogEvent, 0, len(rows))
	for i, r := range rows {
		gameNumber := r.GameNumber
		if gameNumber == 0 {
			gameNumber = i + 1
		}
		events = append(events, models.GameLogEvent{
			Player:     player,
			Season:     imp.season,
			GameNumber: gameNumber,
			Date:       r.Date,
			Opponent:   r.Opponent,
			Points:     r.Points,
			Assists:    r.Assists,
			Rebounds:   r.Rebounds,
		})
	}
	return events, nil
}

func (imp *importer) send(ctx context.Context, events []models.GameLogEvent) (*models.IngestResponse, error) {
	payload, err := json.Marshal(events)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, imp.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, body)
	}

	var out models.IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
