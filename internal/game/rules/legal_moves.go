package rules

import "github.com/mitchelldurbincs/mancala/internal/game/core"

// LegalMoves returns the non-empty pits of player in board order. The result
// is empty only when that side has no seeds left, which means the game is over.
func LegalMoves(board *core.Board, player core.Player) []core.Pit {
	if !player.Valid() {
		return nil
	}
	moves := make([]core.Pit, 0, core.PitsPerSide)
	for _, pit := range board.PitsOf(player) {
		if board.SeedsAt(pit) > 0 {
			moves = append(moves, pit)
		}
	}
	return moves
}

// LegalMoveMask returns one flag per pit of player, indexed by the pit's
// position on that player's side (0 is the pit next to the opponent's store).
// true = legal move, false = illegal move
func LegalMoveMask(board *core.Board, player core.Player) [core.PitsPerSide]bool {
	var mask [core.PitsPerSide]bool
	if !player.Valid() {
		return mask
	}
	for i, pit := range board.PitsOf(player) {
		mask[i] = board.SeedsAt(pit) > 0
	}
	return mask
}

// CountLegalMoves is LegalMoves without the allocation.
func CountLegalMoves(board *core.Board, player core.Player) int {
	n := 0
	for _, legal := range LegalMoveMask(board, player) {
		if legal {
			n++
		}
	}
	return n
}
