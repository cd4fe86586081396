package testutil

import (
	"github.com/mitchelldurbincs/mancala/internal/game/core"
)

// BoardOf builds a board from A's pits, B's pits and the two stores.
func BoardOf(a, b [core.PitsPerSide]int, storeA, storeB int) core.Board {
	var board core.Board
	for i := 0; i < core.PitsPerSide; i++ {
		board.Slots[i] = a[i]
		board.Slots[core.PitsPerSide+i] = b[i]
	}
	board.Slots[core.StoreA] = storeA
	board.Slots[core.StoreB] = storeB
	return board
}

// EndgameBoard has A's side empty and 7 seeds left on B's side.
func EndgameBoard() core.Board {
	return BoardOf([core.PitsPerSide]int{}, [core.PitsPerSide]int{2, 0, 1, 0, 3, 1}, 11, 30)
}

// CaptureBoard lets A capture 5 seeds from pit 8 by sowing pit 1 into the
// empty pit 3 (1 seed in pit 1 would land on 2, so pit 1 holds 2).
func CaptureBoard() core.Board {
	return BoardOf(
		[core.PitsPerSide]int{4, 2, 4, 0, 4, 4},
		[core.PitsPerSide]int{4, 4, 5, 4, 4, 4},
		3, 2,
	)
}

// MidgameBoard is a position with several captures and extra turns
// available to both sides, used to exercise the search.
func MidgameBoard() core.Board {
	return BoardOf(
		[core.PitsPerSide]int{3, 0, 5, 1, 0, 2},
		[core.PitsPerSide]int{1, 6, 0, 2, 4, 3},
		10, 11,
	)
}
