package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/hoopsight/projection-api/internal/logic"
	"github.com/hoopsight/projection-api/internal/models"
)

// Prints what the projection pipeline sees for one player in ClickHouse:
// raw row count, rows kept after cleaning, and the rolling summary.
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: debug_player <player>")
	}
	player := os.Args[1]

	chURL := os.Getenv("CLICKHOUSE_URL")
	if chURL == "" {
		chURL = "clickhouse://localhost:9000/default"
	}

	opts, err := clickhouse.ParseDSN(chURL)
	if err != nil {
		log.Fatalf("Failed to parse DSN: %v", err)
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open connection: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	src := logic.NewClickHouseSource(conn)

	rows, err := src.GameLog(ctx, player)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	clean := logic.CleanGameLog(player, rows)
	fmt.Printf("rows=%d kept=%d dropped=%d\n", len(rows), clean.Len(), len(rows)-clean.Len())

	summary, err := logic.Summarize(clean)
	if err != nil {
		log.Fatalf("Summary failed: %v", err)
	}
	fmt.Printf("window=%d avg=%+v last=%+v\n", summary.WindowSize, summary.Average, summary.Last)

	for _, opp := range models.OpponentTeams {
		if n := len(clean.Against(opp)); n > 0 {
			fmt.Printf("vs %s: %d games\n", opp, n)
		}
	}
}
