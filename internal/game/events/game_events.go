package events

import (
	"time"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeGameReset       = "game.reset"
	TypeMoveExecuted    = "move.executed"
	TypeMoveRejected    = "move.rejected"
	TypeSeedsCaptured   = "seeds.captured"
	TypeExtraTurn       = "turn.extra"
	TypeBoardSwept      = "board.swept"
	TypeSearchCompleted = "search.completed"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	StartingPlayer core.Player
	Board          core.Board
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, starting core.Player, board core.Board) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:      newBase(TypeGameStarted, gameID),
		StartingPlayer: starting,
		Board:          board,
	}
}

// GameEndedEvent is published once the final sweep has been applied
type GameEndedEvent struct {
	BaseEvent
	Winner    core.Player
	Draw      bool
	Scores    core.Scores
	Duration  time.Duration
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Player, draw bool, scores core.Scores, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Draw:      draw,
		Scores:    scores,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// GameResetEvent is published when a session starts over with a new board
type GameResetEvent struct {
	BaseEvent
	PreviousGame string
}

func NewGameResetEvent(gameID, previousGameID string) *GameResetEvent {
	return &GameResetEvent{
		BaseEvent:    newBase(TypeGameReset, gameID),
		PreviousGame: previousGameID,
	}
}

// MoveExecutedEvent is published after a pit has been sown
type MoveExecutedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Pit       core.Pit
	Sown      int
	Landing   core.Pit
	ExtraTurn bool
	Automated bool
}

// NewMoveExecutedEvent creates a new MoveExecutedEvent
func NewMoveExecutedEvent(gameID string, turn int, res core.MoveResult, automated bool) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent: newBase(TypeMoveExecuted, gameID),
		Metadata: EventMetadata{
			Player: res.Player,
			Turn:   turn,
		},
		Pit:       res.Pit,
		Sown:      res.Sown,
		Landing:   res.Landing,
		ExtraTurn: res.ExtraTurn,
		Automated: automated,
	}
}

// MoveRejectedEvent is published when a requested move fails validation
type MoveRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Pit      core.Pit
	Reason   string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, turn int, player core.Player, pit core.Pit, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Metadata: EventMetadata{
			Player: player,
			Turn:   turn,
		},
		Pit:    pit,
		Reason: reason,
	}
}

// SeedsCapturedEvent is published when the last seed lands in an empty pit of
// the mover facing a non-empty pit
type SeedsCapturedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Landing  core.Pit
	Opposite core.Pit
	Seeds    int
}

// NewSeedsCapturedEvent creates a new SeedsCapturedEvent
func NewSeedsCapturedEvent(gameID string, turn int, res core.MoveResult) *SeedsCapturedEvent {
	return &SeedsCapturedEvent{
		BaseEvent: newBase(TypeSeedsCaptured, gameID),
		Metadata: EventMetadata{
			Player: res.Player,
			Turn:   turn,
		},
		Landing:  res.Landing,
		Opposite: res.CapturedFrom,
		Seeds:    res.Captured,
	}
}

// ExtraTurnEvent is published when the mover keeps the turn
type ExtraTurnEvent struct {
	BaseEvent
	Metadata EventMetadata
}

// NewExtraTurnEvent creates a new ExtraTurnEvent
func NewExtraTurnEvent(gameID string, turn int, player core.Player) *ExtraTurnEvent {
	return &ExtraTurnEvent{
		BaseEvent: newBase(TypeExtraTurn, gameID),
		Metadata: EventMetadata{
			Player: player,
			Turn:   turn,
		},
	}
}

// BoardSweptEvent is published when the seeds left in the pits are moved to
// their owners' stores
type BoardSweptEvent struct {
	BaseEvent
	Swept core.Scores
}

// NewBoardSweptEvent creates a new BoardSweptEvent
func NewBoardSweptEvent(gameID string, swept core.Scores) *BoardSweptEvent {
	return &BoardSweptEvent{
		BaseEvent: newBase(TypeBoardSwept, gameID),
		Swept:     swept,
	}
}

// SearchCompletedEvent is published after the automated player picked a move
type SearchCompletedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Pit      core.Pit
	Value    int
	Depth    int
	Nodes    int64
	Duration time.Duration
}

// NewSearchCompletedEvent creates a new SearchCompletedEvent
func NewSearchCompletedEvent(gameID string, turn int, player core.Player, pit core.Pit, value, depth int, nodes int64, duration time.Duration) *SearchCompletedEvent {
	return &SearchCompletedEvent{
		BaseEvent: newBase(TypeSearchCompleted, gameID),
		Metadata: EventMetadata{
			Player: player,
			Turn:   turn,
		},
		Pit:      pit,
		Value:    value,
		Depth:    depth,
		Nodes:    nodes,
		Duration: duration,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
