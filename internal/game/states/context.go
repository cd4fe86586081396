package states

import (
	"time"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging, tagged with the game ID
	Logger zerolog.Logger

	// StartingPlayer moves first
	StartingPlayer core.Player

	// StartTime is when the game started (PhaseRunning entered)
	StartTime time.Time

	// Turn counts the plies played so far
	Turn int

	// Winner of a finished game, NoPlayer while running or on a draw
	Winner core.Player
	Draw   bool
	Scores core.Scores

	// Error holds any error that caused transition to PhaseError
	Error error

	base zerolog.Logger
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, starting core.Player, logger zerolog.Logger) *GameContext {
	gc := &GameContext{
		StartingPlayer: starting,
		Winner:         core.NoPlayer,
		base:           logger,
	}
	gc.SetGameID(gameID)
	return gc
}

// SetGameID rebinds the context, and its logger, to a new game.
func (gc *GameContext) SetGameID(gameID string) {
	gc.GameID = gameID
	gc.Logger = gc.base.With().Str("game_id", gameID).Logger()
}

// HasResult reports whether a winner or a draw has been recorded.
func (gc *GameContext) HasResult() bool {
	return gc.Winner.Valid() || gc.Draw
}

// GetElapsedTime returns the time elapsed since game start
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}
