package core

import (
	"fmt"
	"strings"
)

// Player identifies one side of the board.
type Player int

const (
	PlayerA Player = iota
	PlayerB

	// NoPlayer marks the absence of a player, e.g. the winner of a drawn game.
	NoPlayer Player = -1
)

func (p Player) Valid() bool { return p == PlayerA || p == PlayerB }

// Opponent returns the other side. NoPlayer has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	case NoPlayer:
		return "none"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// ParsePlayer converts "A" or "B" (case-insensitive) to a Player.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return PlayerA, nil
	case "B":
		return PlayerB, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

// Pit indexes one of the 14 slots of the board. 0..5 belong to A, 6..11 to B,
// 12 is A's store and 13 is B's store.
type Pit int

const (
	PitsPerSide  = 6
	SlotCount    = 2*PitsPerSide + 2
	InitialSeeds = 4
	TotalSeeds   = InitialSeeds * 2 * PitsPerSide

	StoreA Pit = 2 * PitsPerSide
	StoreB Pit = StoreA + 1

	NoPit Pit = -1
)

func (p Pit) Valid() bool { return p >= 0 && int(p) < SlotCount }

// Lookup tables fixed for the lifetime of the process.
var (
	successor [SlotCount]Pit
	owner     [SlotCount]Player
	opposite  [SlotCount]Pit
	sidePits  [2][PitsPerSide]Pit
	stores    [2]Pit
)

func init() {
	ring := [SlotCount]Pit{0, 1, 2, 3, 4, 5, StoreA, 6, 7, 8, 9, 10, 11, StoreB}
	for i, p := range ring {
		successor[p] = ring[(i+1)%SlotCount]
	}

	for i := 0; i < PitsPerSide; i++ {
		a := Pit(i)
		b := Pit(PitsPerSide + i)
		owner[a] = PlayerA
		owner[b] = PlayerB
		sidePits[PlayerA][i] = a
		sidePits[PlayerB][i] = b
		// pit i of A faces pit 5-i of B
		opposite[a] = Pit(PitsPerSide + (PitsPerSide - 1 - i))
		opposite[b] = Pit(PitsPerSide - 1 - i)
	}
	stores[PlayerA] = StoreA
	stores[PlayerB] = StoreB
	owner[StoreA] = PlayerA
	owner[StoreB] = PlayerB
	opposite[StoreA] = NoPit
	opposite[StoreB] = NoPit
}

// Board holds the seed count of every slot. It is a plain value: assigning a
// Board copies it, so search branches never share state with the game.
type Board struct {
	Slots [SlotCount]int
}

// NewBoard returns the canonical starting layout: 4 seeds in every pit and
// empty stores.
func NewBoard() Board {
	var b Board
	for i := 0; i < 2*PitsPerSide; i++ {
		b.Slots[i] = InitialSeeds
	}
	return b
}

// PitsOf returns the six pits owned by player in board order.
func (b *Board) PitsOf(player Player) [PitsPerSide]Pit {
	if !player.Valid() {
		return [PitsPerSide]Pit{NoPit, NoPit, NoPit, NoPit, NoPit, NoPit}
	}
	return sidePits[player]
}

// SeedsAt returns the seed count of pit, or 0 for an out-of-range pit.
func (b *Board) SeedsAt(pit Pit) int {
	if !pit.Valid() {
		return 0
	}
	return b.Slots[pit]
}

// StoreOf returns the store owned by player.
func (b *Board) StoreOf(player Player) Pit {
	if !player.Valid() {
		return NoPit
	}
	return stores[player]
}

// Opposite returns the pit facing pit across the board. Stores have no
// opposite.
func (b *Board) Opposite(pit Pit) (Pit, error) {
	if !pit.Valid() {
		return NoPit, fmt.Errorf("%w: pit %d", ErrInvalidPit, pit)
	}
	if IsStore(pit) {
		return NoPit, fmt.Errorf("%w: pit %d", ErrStorePit, pit)
	}
	return opposite[pit], nil
}

// Successor returns the next slot in ring order.
func (b *Board) Successor(pit Pit) Pit {
	if !pit.Valid() {
		return NoPit
	}
	return successor[pit]
}

// Owner returns the player owning pit.
func (b *Board) Owner(pit Pit) Player {
	if !pit.Valid() {
		return NoPlayer
	}
	return owner[pit]
}

// IsStore reports whether pit is one of the two stores.
func IsStore(pit Pit) bool { return pit == StoreA || pit == StoreB }

// SideSeeds sums the seeds in player's six pits, stores excluded.
func (b *Board) SideSeeds(player Player) int {
	if !player.Valid() {
		return 0
	}
	sum := 0
	for _, p := range sidePits[player] {
		sum += b.Slots[p]
	}
	return sum
}

// Total sums every slot. It equals TotalSeeds on any reachable board.
func (b *Board) Total() int {
	sum := 0
	for _, n := range b.Slots {
		sum += n
	}
	return sum
}

// String renders B's row (reversed) on top, the stores on the middle line and
// A's row underneath.
func (b *Board) String() string {
	var sb strings.Builder

	sb.WriteString("    ")
	for i := PitsPerSide - 1; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("%3d", b.Slots[sidePits[PlayerB][i]]))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%3d %s %3d\n", b.Slots[StoreB], strings.Repeat(" ", 3*PitsPerSide), b.Slots[StoreA]))

	sb.WriteString("    ")
	for _, p := range sidePits[PlayerA] {
		sb.WriteString(fmt.Sprintf("%3d", b.Slots[p]))
	}
	sb.WriteString("\n")

	return sb.String()
}
