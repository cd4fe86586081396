package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/mancala/internal/config"
	"github.com/mitchelldurbincs/mancala/internal/game"
	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/mitchelldurbincs/mancala/internal/game/rules"
)

// GameResult summarises one finished self-play game.
type GameResult struct {
	GameID   string
	Outcome  rules.Outcome
	Turns    int
	Duration time.Duration
}

// Tally accumulates results over a self-play run.
type Tally struct {
	WinsA  int
	WinsB  int
	Draws  int
	Errors int
}

func (t *Tally) Add(outcome rules.Outcome) {
	switch {
	case outcome.Draw:
		t.Draws++
	case outcome.Winner == core.PlayerA:
		t.WinsA++
	case outcome.Winner == core.PlayerB:
		t.WinsB++
	}
}

// PlayGame plays one search-vs-search game. The first RandomOpenings moves
// are drawn from rng so that games with the same depths differ.
func PlayGame(ctx context.Context, cfg *config.Config, rng *rand.Rand, logger zerolog.Logger) (GameResult, error) {
	engine, err := game.NewEngine(game.GameConfig{
		StartingPlayer: cfg.StartingPlayer(),
		Depth:          cfg.Search.Depth,
		TimeLimit:      time.Duration(cfg.Search.TimeLimitMs) * time.Millisecond,
		Metrics:        cfg.Search.Metrics,
		LogEvents:      cfg.Development.LogEvents,
		DevMode:        cfg.Development.DevMode,
		Logger:         logger,
	})
	if err != nil {
		return GameResult{}, fmt.Errorf("create engine: %w", err)
	}

	start := time.Now()
	for i := 0; i < cfg.SelfPlay.RandomOpenings && !engine.IsOver(); i++ {
		moves := engine.LegalMoves()
		if _, err := engine.PlayMove(moves[rng.Intn(len(moves))]); err != nil {
			return GameResult{}, err
		}
	}

	for !engine.IsOver() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		depth := cfg.SelfPlay.DepthA
		if engine.ToMove() == core.PlayerB {
			depth = cfg.SelfPlay.DepthB
		}
		if _, _, err := engine.PlayAutomatedWithDepth(ctx, depth); err != nil {
			return GameResult{}, err
		}
	}

	board := engine.Board()
	logger.Debug().Str("game_id", engine.ID()).Msg("Final board\n" + board.String())

	return GameResult{
		GameID:   engine.ID(),
		Outcome:  engine.Outcome(),
		Turns:    engine.Turn(),
		Duration: time.Since(start),
	}, nil
}
