package states

import (
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/mitchelldurbincs/mancala/internal/game/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPhases = []GamePhase{
	PhaseInitializing, PhaseRunning, PhaseEnding, PhaseEnded, PhaseError, PhaseReset,
}

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseRunning, "Running"},
		{PhaseEnding, "Ending"},
		{PhaseEnded, "Ended"},
		{PhaseError, "Error"},
		{PhaseReset, "Reset"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range allPhases {
		parsed, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePhase("Lobby")
	assert.Error(t, err)
}

func TestGamePhase_Properties(t *testing.T) {
	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnded.IsTerminal())
		assert.True(t, PhaseError.IsTerminal())
		assert.False(t, PhaseRunning.IsTerminal())
		assert.False(t, PhaseEnding.IsTerminal())
	})

	t.Run("CanReceiveMoves", func(t *testing.T) {
		assert.True(t, PhaseRunning.CanReceiveMoves())
		assert.False(t, PhaseInitializing.CanReceiveMoves())
		assert.False(t, PhaseEnding.CanReceiveMoves())
		assert.False(t, PhaseEnded.CanReceiveMoves())
	})
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseInitializing, []GamePhase{PhaseRunning, PhaseError}},
		{PhaseRunning, []GamePhase{PhaseEnding, PhaseError}},
		{PhaseEnding, []GamePhase{PhaseEnded, PhaseError}},
		{PhaseEnded, []GamePhase{PhaseReset}},
		{PhaseError, []GamePhase{PhaseReset}},
		{PhaseReset, []GamePhase{PhaseInitializing}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())

			for _, target := range allPhases {
				shouldAllow := false
				for _, allowed := range tt.allowed {
					if target == allowed {
						shouldAllow = true
						break
					}
				}
				assert.Equal(t, shouldAllow, tt.from.CanTransitionTo(target), "%s -> %s", tt.from, target)
			}
		})
	}

	assert.Empty(t, GamePhase(42).AllowedTransitions())
}

func TestGameContext(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("NewGameContext", func(t *testing.T) {
		ctx := NewGameContext("test-game", core.PlayerB, logger)
		assert.Equal(t, "test-game", ctx.GameID)
		assert.Equal(t, core.PlayerB, ctx.StartingPlayer)
		assert.Equal(t, core.NoPlayer, ctx.Winner)
		assert.False(t, ctx.HasResult())
	})

	t.Run("SetGameID", func(t *testing.T) {
		ctx := NewGameContext("first", core.PlayerA, logger)
		ctx.SetGameID("second")
		assert.Equal(t, "second", ctx.GameID)
	})

	t.Run("HasResult", func(t *testing.T) {
		ctx := NewGameContext("test-game", core.PlayerA, logger)
		ctx.Draw = true
		assert.True(t, ctx.HasResult())

		ctx.Draw = false
		ctx.Winner = core.PlayerA
		assert.True(t, ctx.HasResult())
	})

	t.Run("GetElapsedTime", func(t *testing.T) {
		ctx := NewGameContext("test-game", core.PlayerA, logger)
		assert.Equal(t, time.Duration(0), ctx.GetElapsedTime())

		ctx.StartTime = time.Now().Add(-10 * time.Second)
		elapsed := ctx.GetElapsedTime()
		assert.Greater(t, elapsed, 9*time.Second)
		assert.Less(t, elapsed, 11*time.Second)
	})
}

func TestStateMachine(t *testing.T) {
	logger := zerolog.Nop()

	setup := func() (*StateMachine, *GameContext, *[]*events.StateTransitionEvent) {
		ctx := NewGameContext("test-game", core.PlayerA, logger)
		bus := events.NewEventBusWithLogger(logger)
		published := &[]*events.StateTransitionEvent{}
		bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
			*published = append(*published, e.(*events.StateTransitionEvent))
		})
		return NewStateMachine(ctx, bus), ctx, published
	}

	t.Run("NewStateMachine", func(t *testing.T) {
		sm, ctx, _ := setup()
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Len(t, sm.states, len(allPhases))
		assert.Same(t, ctx, sm.GetContext())
	})

	t.Run("Full game lifecycle", func(t *testing.T) {
		sm, ctx, published := setup()

		require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))
		assert.False(t, ctx.StartTime.IsZero())

		require.NoError(t, sm.TransitionTo(PhaseEnding, "side A empty"))

		ctx.Winner = core.PlayerB
		ctx.Scores = core.Scores{11, 37}
		require.NoError(t, sm.TransitionTo(PhaseEnded, "sweep complete"))
		assert.Equal(t, PhaseEnded, sm.CurrentPhase())

		history := sm.GetHistory()
		require.Len(t, history, 3)
		assert.Equal(t, PhaseInitializing, history[0].From)
		assert.Equal(t, PhaseRunning, history[0].To)
		assert.Equal(t, "sweep complete", history[2].Reason)

		require.Len(t, *published, 3)
		assert.Equal(t, "Ending", (*published)[2].FromPhase)
		assert.Equal(t, "Ended", (*published)[2].ToPhase)
		assert.Equal(t, "test-game", (*published)[2].GameID())
	})

	t.Run("Invalid transition", func(t *testing.T) {
		sm, _, published := setup()

		err := sm.TransitionTo(PhaseEnded, "skip ahead")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		assert.True(t, errors.Is(err, core.ErrLogic))
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Empty(t, sm.GetHistory())
		assert.Empty(t, *published)
	})

	t.Run("Validation failure keeps phase", func(t *testing.T) {
		sm, ctx, _ := setup()
		require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))
		require.NoError(t, sm.TransitionTo(PhaseEnding, "side B empty"))

		err := sm.TransitionTo(PhaseEnded, "no result recorded")
		assert.True(t, errors.Is(err, ErrNoResult))
		assert.Equal(t, PhaseEnding, sm.CurrentPhase())

		ctx.Draw = true
		assert.NoError(t, sm.TransitionTo(PhaseEnded, "draw"))
	})

	t.Run("Error and reset", func(t *testing.T) {
		sm, ctx, _ := setup()
		require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))

		err := sm.TransitionTo(PhaseError, "no error set")
		assert.True(t, errors.Is(err, ErrNoError))

		ctx.Error = core.ErrNoLegalMoves
		require.NoError(t, sm.TransitionTo(PhaseError, "search failed"))
		assert.True(t, sm.CurrentPhase().IsTerminal())

		require.NoError(t, sm.Reset("new game"))
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Nil(t, ctx.Error)
		assert.Equal(t, 0, ctx.Turn)

		history := sm.GetHistory()
		require.Len(t, history, 1)
		assert.Equal(t, PhaseReset, history[0].From)
		assert.Equal(t, PhaseInitializing, history[0].To)
	})

	t.Run("Reset from running is rejected", func(t *testing.T) {
		sm, _, _ := setup()
		require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))

		err := sm.Reset("too early")
		assert.True(t, errors.Is(err, ErrInvalidTransition))
		assert.Equal(t, PhaseRunning, sm.CurrentPhase())
	})

	t.Run("Nil publisher", func(t *testing.T) {
		sm := NewStateMachine(NewGameContext("quiet", core.PlayerA, logger), nil)
		assert.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))
	})

	t.Run("History is a copy", func(t *testing.T) {
		sm, _, _ := setup()
		require.NoError(t, sm.TransitionTo(PhaseRunning, "first move"))

		history := sm.GetHistory()
		history[0].Reason = "changed"
		assert.Equal(t, "first move", sm.GetHistory()[0].Reason)
	})
}
