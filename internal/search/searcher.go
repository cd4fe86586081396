package search

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// pollMask sets how often a deadline-bound search checks its context.
const pollMask = 1<<10 - 1

type Option func(s *Searcher)

func WithEvaluator(evaluate Evaluator) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = NewMetricsCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger.With().Str("component", "Searcher").Logger()
	}
}

// Result is the outcome of a search from the root position.
type Result struct {
	Pit     core.Pit
	Value   int
	Depth   int // deepest completed iteration
	Nodes   int64
	Cutoffs int64
	Metrics SearchMetrics // zero unless the searcher was built WithMetrics
}

// Searcher picks moves with depth-limited minimax and alpha-beta pruning.
// Player A maximises the evaluation and player B minimises it. A Searcher is
// not safe for concurrent use when metrics are enabled.
type Searcher struct {
	evaluate Evaluator
	metrics  MetricsCollector
	logger   zerolog.Logger
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		evaluate: Evaluate,
		metrics:  NewNoMetricsCollector(),
		logger:   log.Logger.With().Str("component", "Searcher").Logger(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// BestMove searches depth plies from board with player to move and returns
// the chosen pit and its minimax value. board is never modified.
func (s *Searcher) BestMove(board *core.Board, player core.Player, depth int) (Result, error) {
	if err := checkRoot(board, player, depth); err != nil {
		return Result{}, err
	}

	start := time.Now()
	s.metrics.Start()
	w := &walker{evaluate: s.evaluate, metrics: s.metrics}
	value, pit := w.alphaBeta(*board, player, depth, -Infinity, Infinity)
	s.metrics.AddIteration()

	res := Result{
		Pit:     pit,
		Value:   value,
		Depth:   depth,
		Nodes:   w.nodes,
		Cutoffs: w.cutoffs,
		Metrics: s.metrics.Complete(),
	}
	s.logResult(player, res, time.Since(start))
	return res, nil
}

// Deepen runs BestMove at depths 1 through maxDepth and returns the result of
// the deepest iteration that finished before ctx was done. Depth 1 always
// finishes, so a valid move is returned even under an expired deadline.
func (s *Searcher) Deepen(ctx context.Context, board *core.Board, player core.Player, maxDepth int) (Result, error) {
	if err := checkRoot(board, player, maxDepth); err != nil {
		return Result{}, err
	}

	start := time.Now()
	s.metrics.Start()
	var (
		best    Result
		nodes   int64
		cutoffs int64
	)
	for depth := 1; depth <= maxDepth; depth++ {
		w := &walker{evaluate: s.evaluate, metrics: s.metrics}
		if depth > 1 {
			if ctx.Err() != nil {
				break
			}
			w.ctx = ctx
		}

		value, pit := w.alphaBeta(*board, player, depth, -Infinity, Infinity)
		nodes += w.nodes
		cutoffs += w.cutoffs
		if w.aborted {
			s.logger.Debug().Int("depth", depth).Msg("Iteration aborted at deadline")
			break
		}
		s.metrics.AddIteration()
		best = Result{Pit: pit, Value: value, Depth: depth}
	}

	best.Nodes = nodes
	best.Cutoffs = cutoffs
	best.Metrics = s.metrics.Complete()
	s.logResult(player, best, time.Since(start))
	return best, nil
}

func (s *Searcher) logResult(player core.Player, res Result, elapsed time.Duration) {
	s.logger.Debug().
		Stringer("player", player).
		Int("depth", res.Depth).
		Int("value", res.Value).
		Int("pit", int(res.Pit)).
		Int64("nodes", res.Nodes).
		Int64("cutoffs", res.Cutoffs).
		Dur("duration", elapsed).
		Msg("Search completed")
}

func checkRoot(board *core.Board, player core.Player, depth int) error {
	if depth <= 0 {
		return fmt.Errorf("%w: got %d", core.ErrInvalidDepth, depth)
	}
	if !player.Valid() {
		return core.WrapPlayerError(player, "search", core.ErrInvalidPlayer)
	}
	if core.IsOver(board) {
		return core.WrapPlayerError(player, "search", fmt.Errorf("%w: %w", core.ErrNoLegalMoves, core.ErrGameOver))
	}
	return nil
}

// walker holds the state of a single depth-bounded pass.
type walker struct {
	evaluate Evaluator
	metrics  MetricsCollector
	ctx      context.Context // nil means no deadline
	nodes    int64
	cutoffs  int64
	aborted  bool
}

// alphaBeta takes board by value: every child works on its own copy.
func (w *walker) alphaBeta(board core.Board, player core.Player, depth, alpha, beta int) (int, core.Pit) {
	w.nodes++
	w.metrics.AddNode()
	if w.ctx != nil && w.nodes&pollMask == 0 && w.ctx.Err() != nil {
		w.aborted = true
	}
	if w.aborted {
		return 0, core.NoPit
	}

	if core.IsOver(&board) {
		core.Sweep(&board)
		w.metrics.AddLeaf()
		return w.evaluate(&board), core.NoPit
	}
	if depth == 0 {
		w.metrics.AddLeaf()
		return w.evaluate(&board), core.NoPit
	}

	maximizing := player == core.PlayerA
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	bestPit := core.NoPit

	for _, pit := range board.PitsOf(player) {
		if board.SeedsAt(pit) == 0 {
			continue
		}
		child := board
		res, err := core.ApplyMove(&child, player, pit)
		if err != nil {
			continue
		}
		next := player.Opponent()
		if res.ExtraTurn {
			next = player
		}

		// Extra turns cost a ply like any other move.
		value, _ := w.alphaBeta(child, next, depth-1, alpha, beta)
		if w.aborted {
			return 0, core.NoPit
		}

		if maximizing {
			if value > best {
				best, bestPit = value, pit
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best, bestPit = value, pit
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			w.cutoffs++
			w.metrics.AddCutoff()
			break
		}
	}

	return best, bestPit
}
