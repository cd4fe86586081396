package core

// Scores holds one value per player, indexed by Player.
type Scores [2]int

func (s Scores) Of(player Player) int {
	if !player.Valid() {
		return 0
	}
	return s[player]
}

// IsOver reports whether either side has no seeds left in its pits.
func IsOver(b *Board) bool {
	return b.SideSeeds(PlayerA) == 0 || b.SideSeeds(PlayerB) == 0
}

// Sweep moves the seeds left in the pits of the side that still has any into
// that side's own store. It returns how many seeds each side swept. Sweeping a
// board that is still in play is a no-op, as is sweeping a board where both
// sides are already empty.
func Sweep(b *Board) Scores {
	var swept Scores
	if !IsOver(b) {
		return swept
	}
	for _, player := range [...]Player{PlayerA, PlayerB} {
		store := stores[player]
		for _, p := range sidePits[player] {
			swept[player] += b.Slots[p]
			b.Slots[store] += b.Slots[p]
			b.Slots[p] = 0
		}
	}
	return swept
}

// FinalScores returns both store values. They are final only after Sweep.
func FinalScores(b *Board) Scores {
	return Scores{b.Slots[StoreA], b.Slots[StoreB]}
}
