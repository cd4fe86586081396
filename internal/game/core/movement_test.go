package core

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMove_OpeningSowIntoOpponent(t *testing.T) {
	board := NewBoard()

	res, err := ApplyMove(&board, PlayerA, 5)
	require.NoError(t, err)

	assert.False(t, res.ExtraTurn)
	assert.Equal(t, Pit(8), res.Landing)
	assert.Equal(t, 4, res.Sown)
	assert.Zero(t, res.Captured)
	assert.Equal(t, NoPit, res.CapturedFrom)

	expected := boardOf([PitsPerSide]int{4, 4, 4, 4, 4, 0}, [PitsPerSide]int{5, 5, 5, 4, 4, 4}, 1, 0)
	assert.Equal(t, expected, board)
}

func TestApplyMove_ReplyNoCaptureOnOpponentSide(t *testing.T) {
	board := NewBoard()
	_, err := ApplyMove(&board, PlayerA, 5)
	require.NoError(t, err)

	res, err := ApplyMove(&board, PlayerB, 11)
	require.NoError(t, err)

	assert.False(t, res.ExtraTurn)
	assert.Equal(t, Pit(2), res.Landing)
	assert.Zero(t, res.Captured)

	expected := boardOf([PitsPerSide]int{5, 5, 5, 4, 4, 0}, [PitsPerSide]int{5, 5, 5, 4, 4, 0}, 1, 1)
	assert.Equal(t, expected, board)
}

func TestApplyMove_Capture(t *testing.T) {
	// pit 3 is empty, its opposite pit 8 holds 5
	board := boardOf([PitsPerSide]int{4, 4, 1, 0, 4, 4}, [PitsPerSide]int{4, 4, 5, 4, 4, 4}, 0, 6)
	require.Equal(t, TotalSeeds, board.Total())

	res, err := ApplyMove(&board, PlayerA, 2)
	require.NoError(t, err)

	assert.Equal(t, Pit(3), res.Landing)
	assert.False(t, res.ExtraTurn)
	assert.Equal(t, 6, res.Captured)
	assert.Equal(t, Pit(8), res.CapturedFrom)
	assert.Equal(t, 0, board.SeedsAt(3))
	assert.Equal(t, 0, board.SeedsAt(8))
	assert.Equal(t, 6, board.SeedsAt(StoreA))
	assert.Equal(t, TotalSeeds, board.Total())
}

func TestApplyMove_CaptureForPlayerB(t *testing.T) {
	// B sows one seed from 7 into empty 8, facing A's pit 3
	board := boardOf([PitsPerSide]int{4, 4, 4, 3, 4, 4}, [PitsPerSide]int{4, 1, 0, 4, 4, 4}, 5, 3)
	require.Equal(t, TotalSeeds, board.Total())

	res, err := ApplyMove(&board, PlayerB, 7)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Captured)
	assert.Equal(t, Pit(3), res.CapturedFrom)
	assert.Equal(t, 7, board.SeedsAt(StoreB))
	assert.Equal(t, 5, board.SeedsAt(StoreA), "opponent store is untouched")
	assert.Equal(t, 0, board.SeedsAt(3))
	assert.Equal(t, 0, board.SeedsAt(8))
}

func TestApplyMove_NoCaptureCases(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		player  Player
		pit     Pit
		landing Pit
		seeds   int // seeds left in the landing pit
	}{
		{
			name:    "landing pit was not empty",
			board:   boardOf([PitsPerSide]int{4, 4, 1, 2, 4, 4}, [PitsPerSide]int{4, 4, 5, 4, 4, 4}, 0, 4),
			player:  PlayerA,
			pit:     2,
			landing: 3,
			seeds:   3,
		},
		{
			name:    "opposite pit is empty",
			board:   boardOf([PitsPerSide]int{4, 4, 1, 0, 4, 4}, [PitsPerSide]int{4, 4, 0, 4, 4, 4}, 5, 6),
			player:  PlayerA,
			pit:     2,
			landing: 3,
			seeds:   1,
		},
		{
			name:    "empty landing pit on the opponent side",
			board:   boardOf([PitsPerSide]int{4, 4, 4, 4, 4, 3}, [PitsPerSide]int{4, 0, 4, 4, 4, 4}, 1, 4),
			player:  PlayerA,
			pit:     5,
			landing: 7,
			seeds:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := tt.board
			require.Equal(t, TotalSeeds, board.Total())
			storeBefore := board.SeedsAt(board.StoreOf(tt.player))

			res, err := ApplyMove(&board, tt.player, tt.pit)
			require.NoError(t, err)

			assert.Equal(t, tt.landing, res.Landing)
			assert.Zero(t, res.Captured)
			assert.Equal(t, NoPit, res.CapturedFrom)
			assert.Equal(t, tt.seeds, board.SeedsAt(tt.landing))
			assert.LessOrEqual(t, board.SeedsAt(board.StoreOf(tt.player))-storeBefore, 1)
		})
	}
}

func TestApplyMove_ExtraTurn(t *testing.T) {
	t.Run("direct landing in own store", func(t *testing.T) {
		board := NewBoard()
		res, err := ApplyMove(&board, PlayerA, 2)
		require.NoError(t, err)
		assert.True(t, res.ExtraTurn)
		assert.Equal(t, StoreA, res.Landing)
		assert.Equal(t, 1, board.SeedsAt(StoreA))
	})

	t.Run("after a full lap skipping the opponent store", func(t *testing.T) {
		// 6 steps to the store plus a 13-slot lap without store B
		board := boardOf([PitsPerSide]int{19, 0, 0, 0, 0, 0}, [PitsPerSide]int{4, 4, 4, 4, 4, 4}, 0, 5)
		require.Equal(t, TotalSeeds, board.Total())

		res, err := ApplyMove(&board, PlayerA, 0)
		require.NoError(t, err)

		assert.True(t, res.ExtraTurn)
		assert.Equal(t, StoreA, res.Landing)
		expected := boardOf([PitsPerSide]int{1, 2, 2, 2, 2, 2}, [PitsPerSide]int{5, 5, 5, 5, 5, 5}, 2, 5)
		assert.Equal(t, expected, board)
	})

	t.Run("player B", func(t *testing.T) {
		board := NewBoard()
		res, err := ApplyMove(&board, PlayerB, 8)
		require.NoError(t, err)
		assert.True(t, res.ExtraTurn)
		assert.Equal(t, StoreB, res.Landing)
	})
}

func TestApplyMove_SkipsOpponentStore(t *testing.T) {
	board := boardOf([PitsPerSide]int{4, 4, 4, 4, 4, 4}, [PitsPerSide]int{4, 4, 4, 4, 4, 8}, 0, 0)
	board.Slots[10] = 0
	require.Equal(t, TotalSeeds, board.Total())

	res, err := ApplyMove(&board, PlayerB, 11)
	require.NoError(t, err)

	assert.Equal(t, 0, board.SeedsAt(StoreA), "B must never sow into A's store")
	assert.Equal(t, 1, board.SeedsAt(StoreB))
	assert.Equal(t, Pit(6), res.Landing)
	assert.Equal(t, 5, board.SeedsAt(6))
	assert.Equal(t, TotalSeeds, board.Total())
}

func TestApplyMove_LapBackIntoOriginCaptures(t *testing.T) {
	// 13 seeds visit every slot but store B once and end in the emptied origin
	board := boardOf([PitsPerSide]int{13, 0, 0, 0, 0, 0}, [PitsPerSide]int{5, 5, 5, 5, 5, 5}, 2, 3)
	require.Equal(t, TotalSeeds, board.Total())

	res, err := ApplyMove(&board, PlayerA, 0)
	require.NoError(t, err)

	assert.Equal(t, Pit(0), res.Landing)
	assert.Equal(t, Pit(11), res.CapturedFrom)
	assert.Equal(t, 7, res.Captured, "landing seed plus the 6 seeds opposite")
	assert.Equal(t, 2+1+7, board.SeedsAt(StoreA))
	assert.Equal(t, 3, board.SeedsAt(StoreB))
	assert.Equal(t, TotalSeeds, board.Total())
}

func TestApplyMove_InvalidMoves(t *testing.T) {
	start := NewBoard()
	start.Slots[1] = 0
	start.Slots[StoreB] = 4

	tests := []struct {
		name   string
		player Player
		pit    Pit
		target error
	}{
		{"opponent pit", PlayerA, 7, ErrPitNotOwned},
		{"empty pit", PlayerA, 1, ErrPitEmpty},
		{"own store", PlayerA, StoreA, ErrInvalidPit},
		{"opponent store", PlayerB, StoreA, ErrInvalidPit},
		{"out of range", PlayerB, 14, ErrInvalidPit},
		{"negative pit", PlayerB, -1, ErrInvalidPit},
		{"invalid player", Player(5), 2, ErrInvalidPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := start

			res, err := ApplyMove(&board, tt.player, tt.pit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Equal(t, MoveResult{}, res)
			assert.Equal(t, start, board, "a rejected move must not mutate the board")
		})
	}

	t.Run("categories", func(t *testing.T) {
		board := start
		_, err := ApplyMove(&board, PlayerA, 7)
		assert.True(t, errors.Is(err, ErrInvalidMove))
		_, err = ApplyMove(&board, Player(5), 2)
		assert.True(t, errors.Is(err, ErrLogic))
		assert.Equal(t, "player A: sow pit 1: invalid move: pit is empty", func() string {
			_, err := ApplyMove(&board, PlayerA, 1)
			return err.Error()
		}())
	})
}

func TestApplyMove_Deterministic(t *testing.T) {
	first := NewBoard()
	second := NewBoard()

	for _, pit := range []Pit{2, 5} {
		r1, err1 := ApplyMove(&first, PlayerA, pit)
		r2, err2 := ApplyMove(&second, PlayerA, pit)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, r1, r2)
		assert.Equal(t, first, second)
	}
}

func TestApplyMove_RandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 200; game++ {
		board := NewBoard()
		player := PlayerA

		for !IsOver(&board) {
			var legal []Pit
			for _, p := range board.PitsOf(player) {
				if board.SeedsAt(p) > 0 {
					legal = append(legal, p)
				}
			}
			require.NotEmpty(t, legal, "a board in play always has a move for the side to move\n%s", board.String())

			before := board
			pit := legal[rng.Intn(len(legal))]
			res, err := ApplyMove(&board, player, pit)
			require.NoError(t, err)

			require.Equal(t, TotalSeeds, board.Total(), "seed conservation\n%s", board.String())
			for i, n := range board.Slots {
				require.GreaterOrEqual(t, n, 0, "slot %d went negative", i)
			}
			require.GreaterOrEqual(t, board.SeedsAt(StoreA), before.SeedsAt(StoreA))
			require.GreaterOrEqual(t, board.SeedsAt(StoreB), before.SeedsAt(StoreB))
			require.Equal(t, before.SeedsAt(board.StoreOf(player.Opponent())), board.SeedsAt(board.StoreOf(player.Opponent())),
				"the opponent store never changes during a move")
			require.Equal(t, res.Landing == board.StoreOf(player), res.ExtraTurn)

			if res.Captured > 0 {
				require.Equal(t, before.SeedsAt(res.CapturedFrom)+1+lapSeeds(res, before), res.Captured)
				require.Zero(t, board.SeedsAt(res.Landing))
				require.Zero(t, board.SeedsAt(res.CapturedFrom))
			}

			if !res.ExtraTurn {
				player = player.Opponent()
			}
		}

		Sweep(&board)
		scores := FinalScores(&board)
		require.Equal(t, TotalSeeds, scores.Of(PlayerA)+scores.Of(PlayerB))
	}
}

// lapSeeds counts the seeds a long sowing dropped into the captured opposite
// pit before the capture emptied it.
func lapSeeds(res MoveResult, before Board) int {
	after := before
	after.Slots[res.Pit] = 0
	cur := res.Pit
	skip := after.StoreOf(res.Player.Opponent())
	for remaining := res.Sown; remaining > 0; {
		cur = after.Successor(cur)
		if cur == skip {
			continue
		}
		after.Slots[cur]++
		remaining--
	}
	return after.SeedsAt(res.CapturedFrom) - before.SeedsAt(res.CapturedFrom)
}
