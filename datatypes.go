package connectfour

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/connectfour/game"
	"github.com/connectfour/mcts"
)

var (
	// ErrGameOver is returned when a move is made after the game has ended.
	ErrGameOver = errors.New("game is over")
	// ErrNothingToUndo is returned by Undo on a session without moves.
	ErrNothingToUndo = errors.New("no moves to undo")
	// ErrNotYourTurn is returned when a human move is made on the computer's turn.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrNotSearcher is returned when self play is asked of an agent that does not search.
	ErrNotSearcher = errors.New("agent does not search")
)

// Config holds the grid size, the search settings and who plays.
type Config struct {
	Name     string      `json:"name"`
	Rows     int         `json:"rows"`
	Cols     int         `json:"cols"`
	MCTSConf mcts.Config `json:"mcts_conf"`

	VsAI     bool        `json:"vs_ai"`     // the session answers every human move
	AIPlayer game.Player `json:"ai_player"` // the side the computer plays when VsAI is set

	// maximum number of examples kept by Generate, 0 for no limit
	MaxExamples int `json:"max_examples"`

	// extensions
	Encoder GameEncoder `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		Name:     "Connect Four",
		Rows:     game.DefaultRows,
		Cols:     game.DefaultCols,
		MCTSConf: mcts.DefaultConfig(),
		AIPlayer: game.Player2,
		Encoder:  game.Encode,
	}
}

// Validate reports every problem with the config.
func (c Config) Validate() error {
	var errs error
	if c.Rows < game.MinRows || c.Cols < game.MinCols {
		errs = multierror.Append(errs, errors.Wrapf(game.ErrInvalidDimensions, "%dx%d", c.Rows, c.Cols))
	}
	if err := c.MCTSConf.Validate(); err != nil {
		errs = multierror.Append(errs, errors.Wrap(mcts.ErrInvalidConfig, err.Error()))
	}
	if c.VsAI && !c.AIPlayer.IsValid() {
		errs = multierror.Append(errs, errors.Wrapf(game.ErrInvalidPlayer, "computer plays %v", c.AIPlayer))
	}
	if c.MaxExamples < 0 {
		errs = multierror.Append(errs, errors.Errorf("max examples must not be negative, got %d", c.MaxExamples))
	}
	return errs
}

func (c Config) IsValid() bool { return c.Validate() == nil }

// GameEncoder encodes a position, seen from the side to move, as a tensor.
type GameEncoder func(b game.Board, toMove game.Player) *tensor.Dense

// Example is a representation of an example.
type Example struct {
	Board  *tensor.Dense
	Policy []float32 // root visit distribution over the columns
	Value  float32   // final result for the side to move: 1, -1 or 0

	toMove game.Player
}

// Mover chooses a column for the side to move.
type Mover interface {
	Move(ctx context.Context, b game.Board, toMove game.Player) (game.Column, error)
}

// Searcher is a Mover that exposes its search statistics.
type Searcher interface {
	Mover
	Search(ctx context.Context, b game.Board, toMove game.Player) (mcts.Result, error)
}
