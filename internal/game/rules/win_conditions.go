package rules

import (
	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome is the result of a finished game.
type Outcome struct {
	Over   bool
	Winner core.Player // NoPlayer while the game is running or on a draw
	Draw   bool
	Scores core.Scores
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether either side has run out of seeds.
func (wc *WinConditionChecker) CheckGameOver(board *core.Board) bool {
	over := core.IsOver(board)
	wc.logger.Debug().
		Bool("is_game_over", over).
		Int("side_a_seeds", board.SideSeeds(core.PlayerA)).
		Int("side_b_seeds", board.SideSeeds(core.PlayerB)).
		Msg("Game over check complete")
	return over
}

// Outcome decides the winner from the stores. The board must already be
// swept for the scores to be final; a board still in play reports Over false
// and the current store values.
func (wc *WinConditionChecker) Outcome(board *core.Board) Outcome {
	out := Outcome{
		Over:   core.IsOver(board),
		Winner: core.NoPlayer,
		Scores: core.FinalScores(board),
	}
	if !out.Over {
		return out
	}

	a, b := out.Scores.Of(core.PlayerA), out.Scores.Of(core.PlayerB)
	switch {
	case a > b:
		out.Winner = core.PlayerA
	case b > a:
		out.Winner = core.PlayerB
	default:
		out.Draw = true
	}

	if out.Draw {
		wc.logger.Info().Int("score_a", a).Int("score_b", b).Msg("Game ended in a draw")
	} else {
		wc.logger.Info().Stringer("winner", out.Winner).Int("score_a", a).Int("score_b", b).Msg("Winner determined")
	}
	return out
}
