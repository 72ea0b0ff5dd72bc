package logic

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageLoad      Stage = "load"
	StageAggregate Stage = "aggregate"
	StagePredict   Stage = "predict"
	StageAdjust    Stage = "adjust"
)

var (
	// ErrPlayerNotFound means there is no data source for the player.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrEmptyGameLog means every row of the player's log was dropped during cleaning.
	ErrEmptyGameLog = errors.New("no valid game records")
	// ErrModelInvocation means the model call failed or returned the wrong shape.
	ErrModelInvocation = errors.New("model invocation failed")
	ErrInvalidRestDays = errors.New("rest days must be zero or more")
	ErrUnknownOpponent = errors.New("unknown opponent team")
)

// StageError wraps a pipeline failure with the step and player it belongs to.
type StageError struct {
	Stage  Stage
	Player string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Player, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, player string, err error) error {
	return &StageError{Stage: stage, Player: player, Err: err}
}

// StageOf returns the stage recorded on err, or "" if err has none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
