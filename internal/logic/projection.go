package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hoopsight/projection-api/internal/inference"
	"github.com/hoopsight/projection-api/internal/models"
)

type projectionService struct {
	source      GameLogSource
	model       inference.Model
	logger      *zap.SugaredLogger
	concurrency int
}

// NewProjectionService wires the pipeline to a data source and a model. Both
// are read-only for the lifetime of the service.
func NewProjectionService(source GameLogSource, model inference.Model, logger *zap.Logger, rosterConcurrency int) ProjectionService {
	if rosterConcurrency <= 0 {
		rosterConcurrency = 4
	}
	return &projectionService{
		source:      source,
		model:       model,
		logger:      logger.Sugar(),
		concurrency: rosterConcurrency,
	}
}

func (s *projectionService) Players(ctx context.Context) ([]string, error) {
	players, err := s.source.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players from %s: %w", s.source.Name(), err)
	}
	return players, nil
}

func (s *projectionService) Summary(ctx context.Context, player string) (*models.SummaryResponse, error) {
	log, summary, err := s.load(ctx, player)
	if err != nil {
		return nil, err
	}
	resp := models.NewSummaryResponse(log.Player, summary)
	return &resp, nil
}

func (s *projectionService) Project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error) {
	start := time.Now()
	resp, err := s.project(ctx, req)
	projectionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		projectionFailures.WithLabelValues(string(StageOf(err))).Inc()
		return nil, err
	}
	projectionsTotal.WithLabelValues(string(resp.MatchupStatus)).Inc()
	return resp, nil
}

func (s *projectionService) project(ctx context.Context, req models.ProjectionRequest) (*models.ProjectionResponse, error) {
	opponent, err := validateProjectionInput(req.RestDays, req.Opponent)
	if err != nil {
		return nil, stageErr(StageValidate, req.Player, err)
	}

	log, summary, err := s.load(ctx, req.Player)
	if err != nil {
		return nil, err
	}

	proj, err := Project(ctx, s.model, summary, log, req.RestDays, opponent)
	if err != nil {
		return nil, stageErr(StagePredict, req.Player, err)
	}

	if proj.Status == models.MatchupNoData {
		s.logger.Infow("No matchup history for opponent", "player", req.Player, "opponent", opponent)
	}

	final := proj.Final()
	return &models.ProjectionResponse{
		SummaryResponse:   models.NewSummaryResponse(log.Player, summary),
		ProjectionID:      uuid.NewString(),
		Opponent:          opponent,
		RestDays:          req.RestDays,
		PredictedPoints:   final.Points,
		PredictedAssists:  final.Assists,
		PredictedRebounds: final.Rebounds,
		Base:              proj.Base,
		OpponentAverage:   proj.OpponentAverage,
		OpponentGames:     proj.OpponentGames,
		MatchupStatus:     proj.Status,
	}, nil
}

// load runs the loader and aggregator and attaches stage context to failures.
func (s *projectionService) load(ctx context.Context, player string) (models.PlayerLog, models.RollingSummary, error) {
	log, err := LoadGameLog(ctx, s.source, player)
	if err != nil {
		return models.PlayerLog{}, models.RollingSummary{}, stageErr(StageLoad, player, err)
	}

	summary, err := Summarize(log)
	if err != nil {
		return models.PlayerLog{}, models.RollingSummary{}, stageErr(StageAggregate, player, err)
	}
	return log, summary, nil
}

// ProjectRoster projects each player independently and concurrently. A
// failure for one player is reported in its entry and does not affect the rest.
func (s *projectionService) ProjectRoster(ctx context.Context, req models.RosterRequest) (*models.RosterResponse, error) {
	opponent, err := validateProjectionInput(req.RestDays, req.Opponent)
	if err != nil {
		return nil, stageErr(StageValidate, "", err)
	}

	players := req.Players
	if len(players) == 0 {
		if players, err = s.Players(ctx); err != nil {
			return nil, err
		}
	}

	resp := &models.RosterResponse{
		Opponent: opponent,
		RestDays: req.RestDays,
		Results:  make([]models.RosterEntry, len(players)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, player := range players {
		i, player := i, player
		g.Go(func() error {
			entry := models.RosterEntry{Player: player}
			proj, err := s.Project(ctx, models.ProjectionRequest{
				Player:   player,
				Opponent: opponent,
				RestDays: req.RestDays,
			})
			if err != nil {
				entry.Error = errorMessage(err)
				entry.Stage = string(StageOf(err))
				s.logger.Warnw("Roster projection failed", "player", player, "stage", entry.Stage, "error", err)
			} else {
				entry.Projection = proj
			}
			resp.Results[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func validateProjectionInput(restDays int, opponent string) (string, error) {
	if restDays < 0 {
		return "", ErrInvalidRestDays
	}
	opp := models.NormalizeOpponent(opponent)
	if opp != "" && !models.IsOpponentTeam(opp) {
		return "", fmt.Errorf("%w: %s", ErrUnknownOpponent, opp)
	}
	return opp, nil
}

// errorMessage returns the innermost message of a StageError so API clients
// see "player not found" rather than the wrapped chain.
func errorMessage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}

// ErrorMessage is exported for the HTTP layer.
func ErrorMessage(err error) string { return errorMessage(err) }
