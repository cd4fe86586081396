package game

import (
	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/mitchelldurbincs/mancala/internal/game/rules"
	"github.com/mitchelldurbincs/mancala/internal/search"
)

// NewGame returns a board with 4 seeds in each of the 12 pits and empty
// stores.
func NewGame() core.Board {
	return core.NewBoard()
}

// LegalMoves lists the pits player may sow, in board order.
func LegalMoves(board *core.Board, player core.Player) []core.Pit {
	return rules.LegalMoves(board, player)
}

// ApplyMove sows pit for player and reports whether player moves again. An
// invalid move leaves board untouched and returns an error wrapping
// core.ErrInvalidMove.
func ApplyMove(board *core.Board, player core.Player, pit core.Pit) (bool, error) {
	res, err := core.ApplyMove(board, player, pit)
	if err != nil {
		return false, err
	}
	return res.ExtraTurn, nil
}

// IsOver reports whether either side has emptied its pits.
func IsOver(board *core.Board) bool {
	return core.IsOver(board)
}

// SweepAndFinalize moves the remaining seeds into their owners' stores and
// returns the final scores. On a board still in play it changes nothing and
// returns the current stores.
func SweepAndFinalize(board *core.Board) core.Scores {
	core.Sweep(board)
	return core.FinalScores(board)
}

// Scores returns both store values.
func Scores(board *core.Board) core.Scores {
	return core.FinalScores(board)
}

// ChooseMove runs the alpha-beta search for player with the given depth
// budget and returns the chosen pit and its value from A's point of view.
func ChooseMove(board *core.Board, player core.Player, depth int) (core.Pit, int, error) {
	res, err := search.NewSearcher().BestMove(board, player, depth)
	if err != nil {
		return core.NoPit, 0, err
	}
	return res.Pit, res.Value, nil
}
