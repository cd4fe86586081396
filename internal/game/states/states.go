package states

import (
	"errors"
	"time"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
)

var (
	ErrNoStartingPlayer = errors.New("running state requires a valid starting player")
	ErrNoResult         = errors.New("ended state requires a winner or a draw")
	ErrNoError          = errors.New("error state requires an error in context")
)

// InitializingState represents a set-up board waiting for its first move
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Stringer("starting_player", ctx.StartingPlayer).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("turns", ctx.Turn).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if !ctx.StartingPlayer.Valid() {
		return ErrNoStartingPlayer
	}
	return nil
}

// EndingState covers the final sweep and winner determination
type EndingState struct{}

func NewEndingState() State {
	return &EndingState{}
}

func (s *EndingState) Phase() GamePhase {
	return PhaseEnding
}

func (s *EndingState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("turn", ctx.Turn).
		Msg("Game ending, sweeping remaining seeds")
	return nil
}

func (s *EndingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Game ending phase complete")
	return nil
}

func (s *EndingState) Validate(ctx *GameContext) error {
	return nil
}

// EndedState represents a completed game
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Stringer("winner", ctx.Winner).
		Bool("draw", ctx.Draw).
		Int("score_a", ctx.Scores.Of(core.PlayerA)).
		Int("score_b", ctx.Scores.Of(core.PlayerB)).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if !ctx.HasResult() {
		return ErrNoResult
	}
	return nil
}

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() GamePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Int("turn", ctx.Turn).
		Msg("Game entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Recovering from error state")
	ctx.Error = nil
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return ErrNoError
	}
	return nil
}

// ResetState clears the finished game before a new one is initialized
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Resetting game")

	ctx.StartTime = time.Time{}
	ctx.Turn = 0
	ctx.Winner = core.NoPlayer
	ctx.Draw = false
	ctx.Scores = core.Scores{}
	ctx.Error = nil

	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Game reset complete")
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
