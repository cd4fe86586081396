package core

// MoveResult describes what a single sowing did to the board.
type MoveResult struct {
	Player       Player
	Pit          Pit
	Sown         int  // seeds lifted from Pit
	Landing      Pit  // slot that received the last seed
	ExtraTurn    bool // last seed landed in the mover's own store
	Captured     int  // seeds moved to the store by a capture, landing seed included
	CapturedFrom Pit  // opposite pit emptied by the capture, NoPit otherwise
}

// ValidateMove checks that player may sow pit on b. It never mutates b.
func ValidateMove(b *Board, player Player, pit Pit) error {
	if !player.Valid() {
		return ErrInvalidPlayer
	}
	if !pit.Valid() || IsStore(pit) {
		return ErrInvalidPit
	}
	if owner[pit] != player {
		return ErrPitNotOwned
	}
	if b.Slots[pit] == 0 {
		return ErrPitEmpty
	}
	return nil
}

// ApplyMove sows the seeds of pit for player, skipping the opponent's store on
// every lap, then applies the capture rule. An invalid move returns an error
// wrapping ErrInvalidMove and leaves b untouched.
func ApplyMove(b *Board, player Player, pit Pit) (MoveResult, error) {
	if err := ValidateMove(b, player, pit); err != nil {
		return MoveResult{}, WrapMoveError(player, pit, err)
	}

	own := stores[player]
	skip := stores[player.Opponent()]

	seeds := b.Slots[pit]
	b.Slots[pit] = 0

	cur := pit
	for remaining := seeds; remaining > 0; {
		cur = successor[cur]
		if cur == skip {
			continue
		}
		b.Slots[cur]++
		remaining--
	}

	res := MoveResult{
		Player:       player,
		Pit:          pit,
		Sown:         seeds,
		Landing:      cur,
		CapturedFrom: NoPit,
	}

	if cur == own {
		res.ExtraTurn = true
		return res, nil
	}

	// Landing on an own pit that was empty before the last seed.
	if owner[cur] == player && b.Slots[cur] == 1 {
		opp := opposite[cur]
		if b.Slots[opp] > 0 {
			captured := b.Slots[cur] + b.Slots[opp]
			b.Slots[own] += captured
			b.Slots[cur] = 0
			b.Slots[opp] = 0
			res.Captured = captured
			res.CapturedFrom = opp
		}
	}

	return res, nil
}
