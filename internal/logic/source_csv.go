package logic

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hoopsight/projection-api/internal/models"
)

// Column headers recognised in a game log export. Matching is case-insensitive.
const (
	colGame     = "g"
	colDate     = "date"
	colOpponent = "opp"
	colPoints   = "pts"
	colAssists  = "ast"
	colRebounds = "trb"
)

// CSVSource reads one "<player>.csv" file per player from a directory.
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) ListPlayers(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read game log dir: %w", err)
	}
	players := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		players = append(players, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(players)
	return players, nil
}

func (s *CSVSource) GameLog(ctx context.Context, player string) ([]models.RawGameRow, error) {
	if !ValidPlayerID(player) {
		return nil, ErrPlayerNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, player+".csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("open game log: %w", err)
	}
	defer f.Close()

	rows, err := ParseGameLogCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s.csv: %w", player, err)
	}
	return rows, nil
}

// ParseGameLogCSV reads a game log export. Opp, PTS, AST and TRB are required
// columns; G and Date are read when present. A stat cell that does not parse
// as a number is left nil so the row is dropped during cleaning.
func ParseGameLogCSV(r io.Reader) ([]models.RawGameRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}
	for _, required := range []string{colOpponent, colPoints, colAssists, colRebounds} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []models.RawGameRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlankRecord(rec) {
			continue
		}

		row := models.RawGameRow{
			Date:     cell(rec, cols, colDate),
			Opponent: cell(rec, cols, colOpponent),
			Points:   parseStat(cell(rec, cols, colPoints)),
			Assists:  parseStat(cell(rec, cols, colAssists)),
			Rebounds: parseStat(cell(rec, cols, colRebounds)),
		}
		if n, err := strconv.Atoi(cell(rec, cols, colGame)); err == nil {
			row.GameNumber = n
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseStat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return nil
	}
	return &v
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
