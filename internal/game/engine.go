package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/mitchelldurbincs/mancala/internal/game/events"
	"github.com/mitchelldurbincs/mancala/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/mancala/internal/game/rules"
	"github.com/mitchelldurbincs/mancala/internal/game/states"
	"github.com/mitchelldurbincs/mancala/internal/search"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// GameConfig configures an Engine. The zero value of every field except
// Logger has a usable default.
type GameConfig struct {
	// GameID is generated when empty.
	GameID string
	// StartingPlayer defaults to player A when not a valid player.
	StartingPlayer core.Player
	// AutomatedPlayer is the side played by the search. The zero value is
	// player A; NoPlayer means both sides are human.
	AutomatedPlayer core.Player
	// Depth is the search depth budget, DefaultDepth when zero.
	Depth     int
	TimeLimit time.Duration
	Metrics   bool
	// LogEvents attaches a logging subscriber to the event bus. DevMode makes
	// it log full event payloads.
	LogEvents bool
	DevMode   bool
	// Board is the starting position, the canonical layout when nil.
	Board  *core.Board
	Logger zerolog.Logger
}

const DefaultDepth = 6

// Engine is a single game session. It owns the authoritative board and the
// player to move; searches only ever see copies. An Engine is not safe for
// concurrent use.
type Engine struct {
	id        string
	board     core.Board
	toMove    core.Player
	turn      int
	startedAt time.Time
	outcome   rules.Outcome

	config       GameConfig
	logger       zerolog.Logger
	eventBus     *events.EventBus
	gameContext  *states.GameContext
	stateMachine *states.StateMachine
	winCondition *rules.WinConditionChecker
	searcher     *search.Searcher
}

// NewEngine validates cfg and sets up a game in PhaseInitializing.
func NewEngine(cfg GameConfig) (*Engine, error) {
	if !cfg.StartingPlayer.Valid() {
		cfg.StartingPlayer = core.PlayerA
	}
	if cfg.AutomatedPlayer != core.NoPlayer && !cfg.AutomatedPlayer.Valid() {
		return nil, fmt.Errorf("%w: automated player %s", core.ErrConfiguration, cfg.AutomatedPlayer)
	}
	if cfg.Depth == 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Depth < 0 {
		return nil, fmt.Errorf("%w: got %d", core.ErrInvalidDepth, cfg.Depth)
	}
	if cfg.TimeLimit < 0 {
		return nil, fmt.Errorf("%w: negative time limit %s", core.ErrConfiguration, cfg.TimeLimit)
	}
	if cfg.Board != nil && cfg.Board.Total() != core.TotalSeeds {
		return nil, fmt.Errorf("%w: starting board holds %d seeds, want %d", core.ErrConfiguration, cfg.Board.Total(), core.TotalSeeds)
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}

	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	searchOpts := []search.Option{search.WithLogger(cfg.Logger)}
	if cfg.Metrics {
		searchOpts = append(searchOpts, search.WithMetrics())
	}

	bus := events.NewEventBusWithLogger(cfg.Logger)
	if cfg.LogEvents {
		logSub := subscribers.NewLoggerSubscriber("event_logger", cfg.Logger, zerolog.InfoLevel)
		logSub.SetDevMode(cfg.DevMode)
		bus.Subscribe(logSub)
	}

	gameContext := states.NewGameContext(cfg.GameID, cfg.StartingPlayer, logger)
	e := &Engine{
		config:       cfg,
		logger:       logger,
		eventBus:     bus,
		gameContext:  gameContext,
		stateMachine: states.NewStateMachine(gameContext, bus),
		winCondition: rules.NewWinConditionChecker(cfg.Logger),
		searcher:     search.NewSearcher(searchOpts...),
	}

	board := core.NewBoard()
	if cfg.Board != nil {
		board = *cfg.Board
	}
	if err := e.start(cfg.GameID, board); err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("game_id", e.id).
		Stringer("starting_player", cfg.StartingPlayer).
		Stringer("automated_player", cfg.AutomatedPlayer).
		Int("depth", cfg.Depth).
		Dur("time_limit", cfg.TimeLimit).
		Msg("Engine created successfully")
	return e, nil
}

// start installs board as a new game and finishes it right away when it is
// already over.
func (e *Engine) start(gameID string, board core.Board) error {
	e.id = gameID
	e.board = board
	e.toMove = e.config.StartingPlayer
	e.turn = 0
	e.startedAt = time.Now()
	e.outcome = rules.Outcome{Winner: core.NoPlayer}
	e.gameContext.SetGameID(gameID)

	e.eventBus.Publish(events.NewGameStartedEvent(e.id, e.toMove, e.board))

	if core.IsOver(&e.board) {
		if err := e.stateMachine.TransitionTo(states.PhaseRunning, "position loaded"); err != nil {
			return err
		}
		return e.finish("starting position is already over")
	}
	return nil
}

func (e *Engine) ID() string { return e.id }

// Board returns a copy of the current board.
func (e *Engine) Board() core.Board { return e.board }

// ToMove returns the player to move, NoPlayer once the game is over.
func (e *Engine) ToMove() core.Player { return e.toMove }

// Turn counts the moves played so far.
func (e *Engine) Turn() int { return e.turn }

func (e *Engine) Phase() states.GamePhase { return e.stateMachine.CurrentPhase() }

func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// IsOver reports whether the game has finished, normally or by error.
func (e *Engine) IsOver() bool {
	return e.Phase().IsTerminal()
}

// IsAutomatedTurn reports whether the search should pick the next move.
func (e *Engine) IsAutomatedTurn() bool {
	return !e.IsOver() && e.toMove == e.config.AutomatedPlayer
}

// LegalMoves lists the pits the player to move may sow.
func (e *Engine) LegalMoves() []core.Pit {
	if e.IsOver() {
		return nil
	}
	return rules.LegalMoves(&e.board, e.toMove)
}

// Scores returns the current store values. They are final once the game is
// over.
func (e *Engine) Scores() core.Scores {
	return core.FinalScores(&e.board)
}

// Outcome returns the result of a finished game, or Over false while the game
// is running.
func (e *Engine) Outcome() rules.Outcome {
	if e.Phase() == states.PhaseEnded {
		return e.outcome
	}
	return rules.Outcome{Winner: core.NoPlayer, Scores: e.Scores()}
}

// PlayMove sows pit for the player to move. A pit that is not one of
// LegalMoves is rejected with an error wrapping core.ErrInvalidMove and the
// board is left untouched, so the caller can ask again.
func (e *Engine) PlayMove(pit core.Pit) (core.MoveResult, error) {
	return e.playMove(pit, false)
}

// PlayAutomated lets the search pick and play a move for the player to move.
// With a time limit configured the search deepens iteratively until ctx or
// the limit expires; otherwise it runs to the configured depth.
func (e *Engine) PlayAutomated(ctx context.Context) (core.MoveResult, search.Result, error) {
	return e.PlayAutomatedWithDepth(ctx, e.config.Depth)
}

// PlayAutomatedWithDepth is PlayAutomated with an explicit depth budget.
func (e *Engine) PlayAutomatedWithDepth(ctx context.Context, depth int) (core.MoveResult, search.Result, error) {
	if e.IsOver() {
		return core.MoveResult{}, search.Result{}, core.NewGameError(e.turn, e.toMove, "choose move", core.ErrGameOver)
	}

	start := time.Now()
	var (
		sr  search.Result
		err error
	)
	if e.config.TimeLimit > 0 {
		searchCtx, cancel := context.WithTimeout(ctx, e.config.TimeLimit)
		sr, err = e.searcher.Deepen(searchCtx, &e.board, e.toMove, depth)
		cancel()
	} else {
		sr, err = e.searcher.BestMove(&e.board, e.toMove, depth)
	}
	if err != nil {
		gameErr := core.NewGameError(e.turn, e.toMove, "choose move", err)
		if !errors.Is(err, core.ErrConfiguration) {
			e.fail(gameErr)
		}
		return core.MoveResult{}, sr, gameErr
	}

	e.eventBus.Publish(events.NewSearchCompletedEvent(e.id, e.turn+1, e.toMove, sr.Pit, sr.Value, sr.Depth, sr.Nodes, time.Since(start)))

	res, err := e.playMove(sr.Pit, true)
	return res, sr, err
}

func (e *Engine) playMove(pit core.Pit, automated bool) (core.MoveResult, error) {
	if e.IsOver() {
		return core.MoveResult{}, core.NewGameError(e.turn, e.toMove, "apply move", core.ErrGameOver)
	}

	player := e.toMove
	if !slices.Contains(rules.LegalMoves(&e.board, player), pit) {
		reason := core.ValidateMove(&e.board, player, pit)
		if reason == nil {
			reason = core.ErrInvalidPit
		}
		err := core.WrapMoveError(player, pit, reason)
		e.eventBus.Publish(events.NewMoveRejectedEvent(e.id, e.turn+1, player, pit, reason.Error()))
		e.logger.Debug().Err(err).Msg("Move rejected")
		return core.MoveResult{}, err
	}

	if e.Phase() == states.PhaseInitializing {
		if err := e.stateMachine.TransitionTo(states.PhaseRunning, "first move"); err != nil {
			return core.MoveResult{}, e.fail(err)
		}
	}

	res, err := core.ApplyMove(&e.board, player, pit)
	if err != nil {
		return core.MoveResult{}, e.fail(core.NewGameError(e.turn, player, "apply move", err))
	}
	e.turn++
	e.gameContext.Turn = e.turn

	e.eventBus.Publish(events.NewMoveExecutedEvent(e.id, e.turn, res, automated))
	if res.Captured > 0 {
		e.eventBus.Publish(events.NewSeedsCapturedEvent(e.id, e.turn, res))
	}
	if res.ExtraTurn {
		e.eventBus.Publish(events.NewExtraTurnEvent(e.id, e.turn, player))
	}

	e.logger.Info().
		Int("turn", e.turn).
		Stringer("player", player).
		Int("pit", int(pit)).
		Bool("extra_turn", res.ExtraTurn).
		Int("captured", res.Captured).
		Bool("automated", automated).
		Msg("Move played")

	if e.winCondition.CheckGameOver(&e.board) {
		return res, e.finish(fmt.Sprintf("side %s has no seeds left", emptySide(&e.board)))
	}

	if !res.ExtraTurn {
		e.toMove = player.Opponent()
	}
	return res, nil
}

// finish sweeps the board, records the outcome and moves to PhaseEnded.
func (e *Engine) finish(reason string) error {
	if err := e.stateMachine.TransitionTo(states.PhaseEnding, reason); err != nil {
		return e.fail(err)
	}

	swept := core.Sweep(&e.board)
	e.eventBus.Publish(events.NewBoardSweptEvent(e.id, swept))

	e.outcome = e.winCondition.Outcome(&e.board)
	e.gameContext.Winner = e.outcome.Winner
	e.gameContext.Draw = e.outcome.Draw
	e.gameContext.Scores = e.outcome.Scores
	e.toMove = core.NoPlayer

	if err := e.stateMachine.TransitionTo(states.PhaseEnded, "sweep complete"); err != nil {
		return e.fail(err)
	}

	e.eventBus.Publish(events.NewGameEndedEvent(e.id, e.outcome.Winner, e.outcome.Draw, e.outcome.Scores, time.Since(e.startedAt), e.turn))
	return nil
}

// fail moves the game to PhaseError and returns err.
func (e *Engine) fail(err error) error {
	e.gameContext.Error = err
	if tErr := e.stateMachine.TransitionTo(states.PhaseError, err.Error()); tErr != nil {
		e.logger.Error().Err(tErr).AnErr("cause", err).Msg("Failed to enter error state")
	}
	return err
}

// Reset discards a finished game and starts a new one with a fresh ID and the
// canonical starting board.
func (e *Engine) Reset() error {
	previous := e.id
	if err := e.stateMachine.Reset("new game requested"); err != nil {
		return err
	}

	next := uuid.NewString()
	e.eventBus.Publish(events.NewGameResetEvent(next, previous))
	return e.start(next, core.NewBoard())
}

func emptySide(board *core.Board) core.Player {
	if board.SideSeeds(core.PlayerA) == 0 {
		return core.PlayerA
	}
	return core.PlayerB
}
