// Command arena plays a series of games between a searching agent and an opponent,
// and optionally generates self-play examples.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	connectfour "github.com/connectfour"
	"github.com/connectfour/config"
	"github.com/connectfour/game"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	setupLogging(cfg.Debug)

	conf, err := cfg.GameConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	conf.Name = "arena"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := connectfour.NewAgent("mcts", game.Player1, connectfour.MCTSMover{Conf: conf.MCTSConf})
	var b *connectfour.Agent
	switch cfg.Opponent {
	case "mcts":
		b = connectfour.NewAgent("mcts-2", game.Player2, connectfour.MCTSMover{Conf: conf.MCTSConf})
	case "random":
		b = connectfour.NewAgent("random", game.Player2, connectfour.RandomMover{Seed: conf.MCTSConf.Seed})
	default:
		log.Fatal().Str("opponent", cfg.Opponent).Msg("unknown opponent")
	}
	ar := connectfour.MakeArena(conf, a, b)

	if cfg.Games > 0 {
		s, err := ar.Tournament(ctx, cfg.Games, cfg.Parallel)
		if err != nil {
			log.Fatal().Err(err).Msg("tournament")
		}
		fmt.Printf("%s vs %s: %v\n", a.Name, b.Name, s)
	}

	if cfg.Episodes > 0 {
		ex, err := ar.Generate(ctx, cfg.Episodes)
		if err != nil {
			log.Fatal().Err(err).Msg("self play")
		}
		fmt.Printf("%d examples from %d self-play games\n", len(ex), cfg.Episodes)
	}
}
