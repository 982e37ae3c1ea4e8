// Command bestmove prints the column the search picks after a list of moves.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/connectfour/config"
	"github.com/connectfour/game"
	"github.com/connectfour/mcts"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	conf, err := cfg.MCTSConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	moves, err := config.ParseMoves(cfg.Moves)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid moves")
	}
	b, toMove, err := game.Replay(cfg.Rows, cfg.Cols, game.Player1, moves...)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid position")
	}
	fmt.Println(b)

	res, err := mcts.New(conf, nil).Search(context.Background(), b, toMove)
	if err != nil {
		log.Fatal().Err(err).Msg("search")
	}
	for _, s := range res.Stats {
		log.Info().Int("col", int(s.Move)).Uint32("visits", s.Visits).Float32("score", s.Score).Msg("root child")
	}
	fmt.Printf("%v to move: column %d (%d iterations)\n", toMove, res.Move, res.Iterations)

	if cfg.Dot != "" {
		dot, err := res.Tree.Dot(cfg.DotDepth)
		if err != nil {
			log.Fatal().Err(err).Msg("dot")
		}
		if err := os.WriteFile(cfg.Dot, []byte(dot), 0644); err != nil {
			log.Fatal().Err(err).Msg("dot")
		}
		log.Info().Str("file", cfg.Dot).Int("nodes", res.Tree.Len()).Msg("wrote search tree")
	}
}
