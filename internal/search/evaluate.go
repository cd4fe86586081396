package search

import "github.com/mitchelldurbincs/mancala/internal/game/core"

// Evaluator scores a board from player A's point of view: positive values
// favour A, negative values favour B.
type Evaluator func(board *core.Board) int

// Evaluate is the store difference. It is used both for finished games and as
// the heuristic at the depth limit.
func Evaluate(board *core.Board) int {
	return board.SeedsAt(core.StoreA) - board.SeedsAt(core.StoreB)
}

// Infinity bounds every evaluation: no store difference can reach it.
const Infinity = 1 << 20
