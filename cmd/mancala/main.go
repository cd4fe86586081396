package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/mancala/internal/config"
	"github.com/mitchelldurbincs/mancala/internal/game/core"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge (e.g. development, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	games := flag.Int("games", -1, "Number of self-play games (-1 to use config default)")
	depthA := flag.Int("depth-a", -1, "Search depth for player A (-1 to use config default)")
	depthB := flag.Int("depth-b", -1, "Search depth for player B (-1 to use config default)")
	watch := flag.Bool("watch", false, "Reload the config file between games when it changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if *env != "" {
		if err := config.LoadEnvironmentConfig(*env); err != nil {
			log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
		}
	}

	// Flags override the config file
	if *logLevel != "" {
		config.Set("logging.level", *logLevel)
	}
	if *games != -1 {
		config.Set("selfplay.games", *games)
	}
	if *depthA != -1 {
		config.Set("selfplay.depth_a", *depthA)
	}
	if *depthB != -1 {
		config.Set("selfplay.depth_b", *depthB)
	}

	settings := *config.Get()
	cfg := &settings
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	var mu sync.Mutex
	if *watch {
		config.WatchConfig(func(updated *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			next := *updated
			mu.Lock()
			cfg = &next
			mu.Unlock()
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	log.Info().
		Int("games", cfg.SelfPlay.Games).
		Int("depth_a", cfg.SelfPlay.DepthA).
		Int("depth_b", cfg.SelfPlay.DepthB).
		Int("random_openings", cfg.SelfPlay.RandomOpenings).
		Uint64("seed", cfg.SelfPlay.Seed).
		Msg("Starting self-play")

	rng := rand.New(rand.NewSource(cfg.SelfPlay.Seed))
	var tally Tally
	start := time.Now()

	for i := 0; i < cfg.SelfPlay.Games && ctx.Err() == nil; i++ {
		mu.Lock()
		current := cfg
		mu.Unlock()

		res, err := PlayGame(ctx, current, rng, log.Logger)
		if err != nil {
			log.Error().Err(err).Int("game", i+1).Msg("Self-play game failed")
			tally.Errors++
			continue
		}
		tally.Add(res.Outcome)

		log.Info().
			Int("game", i+1).
			Str("game_id", res.GameID).
			Stringer("winner", res.Outcome.Winner).
			Bool("draw", res.Outcome.Draw).
			Int("score_a", res.Outcome.Scores.Of(core.PlayerA)).
			Int("score_b", res.Outcome.Scores.Of(core.PlayerB)).
			Int("turns", res.Turns).
			Dur("duration", res.Duration).
			Msg("Game finished")
	}

	log.Info().
		Int("wins_a", tally.WinsA).
		Int("wins_b", tally.WinsB).
		Int("draws", tally.Draws).
		Int("errors", tally.Errors).
		Dur("elapsed", time.Since(start)).
		Msg("Self-play complete")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	// Pretty console output for development
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}
