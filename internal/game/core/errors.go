package core

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every specific error below wraps exactly one of these, so
// callers can branch with errors.Is on the category alone.
var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrLogic         = errors.New("logic error")
	ErrConfiguration = errors.New("configuration error")
)

var (
	ErrPitNotOwned   = fmt.Errorf("%w: pit not owned by player", ErrInvalidMove)
	ErrPitEmpty      = fmt.Errorf("%w: pit is empty", ErrInvalidMove)
	ErrInvalidPit    = fmt.Errorf("%w: pit out of range", ErrInvalidMove)
	ErrNotYourTurn   = fmt.Errorf("%w: not this player's turn", ErrInvalidMove)
	ErrStorePit      = fmt.Errorf("%w: store has no opposite pit", ErrLogic)
	ErrNoLegalMoves  = fmt.Errorf("%w: no legal moves", ErrLogic)
	ErrInvalidPlayer = fmt.Errorf("%w: invalid player", ErrLogic)
	ErrInvalidDepth  = fmt.Errorf("%w: depth budget must be positive", ErrConfiguration)
	ErrGameOver      = errors.New("game is over")
)

// WrapMoveError adds the mover and pit to err.
func WrapMoveError(player Player, pit Pit, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %s: sow pit %d: %w", player, pit, err)
}

// WrapPlayerError adds the player and the failed operation to err.
func WrapPlayerError(player Player, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %s %s: %w", player, operation, err)
}

// GameError carries the turn at which an operation failed.
type GameError struct {
	Turn      int
	Player    Player
	Operation string
	Err       error
}

func NewGameError(turn int, player Player, operation string, err error) *GameError {
	return &GameError{
		Turn:      turn,
		Player:    player,
		Operation: operation,
		Err:       err,
	}
}

func (e *GameError) Error() string {
	if e.Player.Valid() {
		return fmt.Sprintf("turn %d: player %s %s: %v", e.Turn, e.Player, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}
