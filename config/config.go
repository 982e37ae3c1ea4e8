// Package config loads the command line and environment settings of the commands.
// Every flag can also be set through an environment variable named CONNECTFOUR_<FLAG>,
// upper-cased with dashes turned into underscores.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/namsral/flag"
	"github.com/pkg/errors"

	connectfour "github.com/connectfour"
	"github.com/connectfour/game"
	"github.com/connectfour/mcts"
)

const envPrefix = "CONNECTFOUR"

type Config struct {
	Rows        int
	Cols        int
	Iterations  int
	Exploration float64
	Timeout     time.Duration
	Seed        int64
	Accounting  string

	Games       int
	Parallel    int
	Opponent    string
	Episodes    int
	MaxExamples int

	Moves    string
	Dot      string
	DotDepth int

	Debug bool
}

// Load parses args, falling back to the environment and then the defaults.
func (c *Config) Load(args []string) error {
	def := mcts.DefaultConfig()
	fs := flag.NewFlagSetWithEnvPrefix("connectfour", envPrefix, flag.ContinueOnError)
	fs.IntVar(&c.Rows, "rows", game.DefaultRows, "number of rows of the grid")
	fs.IntVar(&c.Cols, "cols", game.DefaultCols, "number of columns of the grid")
	fs.IntVar(&c.Iterations, "iterations", def.Budget, "search iterations per move")
	fs.Float64Var(&c.Exploration, "exploration", float64(def.Exploration), "UCB1 exploration constant")
	fs.DurationVar(&c.Timeout, "timeout", 0, "wall-clock limit per move, 0 for none")
	fs.Int64Var(&c.Seed, "seed", 0, "random seed, 0 for a random one")
	fs.StringVar(&c.Accounting, "accounting", "per-mover", "how playout results are credited: per-mover or unflipped")
	fs.IntVar(&c.Games, "games", 10, "number of arena games")
	fs.IntVar(&c.Parallel, "parallel", 1, "arena games played at once")
	fs.StringVar(&c.Opponent, "opponent", "mcts", "arena opponent: mcts or random")
	fs.IntVar(&c.Episodes, "episodes", 0, "self-play games to generate examples from")
	fs.IntVar(&c.MaxExamples, "max-examples", 0, "maximum number of examples kept, 0 for all")
	fs.StringVar(&c.Moves, "moves", "", "comma separated columns played so far, Player1 first")
	fs.StringVar(&c.Dot, "dot", "", "file to write the search tree to in Graphviz DOT")
	fs.IntVar(&c.DotDepth, "dot-depth", 2, "plies of the search tree written to -dot, negative for all")
	fs.BoolVar(&c.Debug, "debug", false, "log at debug level")
	return fs.Parse(args)
}

// ParseAccounting maps a flag value to an mcts.Accounting.
func ParseAccounting(s string) (mcts.Accounting, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "", "per-mover", "permover":
		return mcts.PerMover, nil
	case "unflipped":
		return mcts.Unflipped, nil
	}
	return 0, errors.Errorf("unknown accounting %q", s)
}

// MCTSConfig returns the search settings.
func (c Config) MCTSConfig() (mcts.Config, error) {
	acc, err := ParseAccounting(c.Accounting)
	if err != nil {
		return mcts.Config{}, err
	}
	conf := mcts.Config{
		Budget:      c.Iterations,
		Exploration: float32(c.Exploration),
		Timeout:     c.Timeout,
		Seed:        c.Seed,
		Accounting:  acc,
	}
	return conf, errors.Wrap(conf.Validate(), "search config")
}

// GameConfig returns the grid and search settings together, validated.
func (c Config) GameConfig() (connectfour.Config, error) {
	mc, err := c.MCTSConfig()
	if err != nil {
		return connectfour.Config{}, err
	}
	conf := connectfour.DefaultConfig()
	conf.Rows, conf.Cols = c.Rows, c.Cols
	conf.MCTSConf = mc
	conf.MaxExamples = c.MaxExamples
	if err := conf.Validate(); err != nil {
		return connectfour.Config{}, err
	}
	return conf, nil
}

// ParseMoves reads a comma separated list of columns.
func ParseMoves(s string) ([]game.Column, error) {
	var moves []game.Column
	for i, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		col, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "move %d: %q", i+1, f)
		}
		moves = append(moves, game.Column(col))
	}
	return moves, nil
}
