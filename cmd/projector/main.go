// Command projector prints a next-game projection for one player from a
// directory of game log CSV files and a linear model manifest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hoopsight/projection-api/internal/inference"
	"github.com/hoopsight/projection-api/internal/logic"
	"github.com/hoopsight/projection-api/internal/models"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:], os.Stdout, logger); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "projector: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("projector", flag.ContinueOnError)
	dataDir := fs.String("data", "data", "directory of <player>.csv game logs")
	modelPath := fs.String("model", "model.yaml", "linear model manifest (YAML or JSON)")
	player := fs.String("player", "", "player to project")
	opponent := fs.String("opponent", "none", "opponent team code, or none")
	restDays := fs.Int("rest-days", 0, "days of rest before the game")
	list := fs.Bool("list", false, "list available players and opponent teams")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source := logic.NewCSVSource(*dataDir)

	if *list {
		return printLists(ctx, out, source)
	}
	if *player == "" {
		return errors.New("-player is required (use -list to see players)")
	}

	model, err := inference.LoadLinearModel(*modelPath)
	if err != nil {
		return err
	}

	svc := logic.NewProjectionService(source, model, logger, 1)
	return project(ctx, out, svc, models.ProjectionRequest{
		Player:   *player,
		Opponent: *opponent,
		RestDays: *restDays,
	})
}

// project prints the rolling summary and the projection from a single
// pipeline run.
func project(ctx context.Context, out io.Writer, svc logic.ProjectionService, req models.ProjectionRequest) error {
	resp, err := svc.Project(ctx, req)
	if err != nil {
		return err
	}
	printSummary(out, &resp.SummaryResponse)
	printProjection(out, resp)
	return nil
}

func printLists(ctx context.Context, out io.Writer, source logic.GameLogSource) error {
	players, err := source.ListPlayers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Players:")
	for _, p := range players {
		fmt.Fprintf(out, "  %s\n", p)
	}
	fmt.Fprintln(out, "Opponents:")
	for _, t := range models.Teams() {
		fmt.Fprintf(out, "  %s  %s\n", t.Code, t.Name)
	}
	return nil
}

func printSummary(out io.Writer, s *models.SummaryResponse) {
	fmt.Fprintf(out, "%s (last %d of %d games)\n", s.Player, s.WindowSize, s.GamesPlayed)
	fmt.Fprintf(out, "  Rolling avg points:   %.2f  (last game %.2f)\n", s.RollingAvgPoints, s.LastPoints)
	fmt.Fprintf(out, "  Rolling avg assists:  %.2f  (last game %.2f)\n", s.RollingAvgAssists, s.LastAssists)
	fmt.Fprintf(out, "  Rolling avg rebounds: %.2f  (last game %.2f)\n", s.RollingAvgRebounds, s.LastRebounds)
}

func printProjection(out io.Writer, p *models.ProjectionResponse) {
	if p.MatchupStatus == models.MatchupNoData {
		fmt.Fprintf(out, "Didn't play against %s last season\n", p.Opponent)
	}
	label := "Projection"
	if p.MatchupStatus == models.MatchupAdjusted {
		label = fmt.Sprintf("Projection vs %s", p.Opponent)
	}
	fmt.Fprintf(out, "%s (rest days %d)\n", label, p.RestDays)
	fmt.Fprintf(out, "  Predicted points:   %.2f\n", models.Round2(p.PredictedPoints))
	fmt.Fprintf(out, "  Predicted assists:  %.2f\n", models.Round2(p.PredictedAssists))
	fmt.Fprintf(out, "  Predicted rebounds: %.2f\n", models.Round2(p.PredictedRebounds))
}
