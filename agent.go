package connectfour

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/connectfour/game"
	"github.com/connectfour/mcts"
)

// An Agent is a named player with a move policy and running statistics.
type Agent struct {
	Mover
	Name   string
	Player game.Player // the side this agent takes in Arena.Play

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex
}

// NewAgent creates an agent playing player with m.
func NewAgent(name string, player game.Player, m Mover) *Agent {
	return &Agent{
		Mover:  m,
		Name:   name,
		Player: player,
	}
}

func (a *Agent) record(o game.Outcome) {
	a.Lock()
	switch o {
	case game.Win:
		a.Wins++
	case game.Loss:
		a.Loss++
	case game.Draw:
		a.Draw++
	}
	a.Unlock()
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}

// seedFor derives a per-position seed so that stateless movers stay reproducible
// however games are scheduled. A zero seed stays zero, meaning unseeded.
func seedFor(seed int64, b game.Board) int64 {
	if seed == 0 {
		return 0
	}
	if s := seed ^ int64(b.Hash()); s != 0 {
		return s
	}
	return seed
}

// MCTSMover picks moves with a fresh tree search per decision.
// It holds no state between calls and may be shared between goroutines.
type MCTSMover struct {
	Conf mcts.Config
}

// Search runs one search from b.
func (m MCTSMover) Search(ctx context.Context, b game.Board, toMove game.Player) (mcts.Result, error) {
	conf := m.Conf
	conf.Seed = seedFor(conf.Seed, b)
	return mcts.New(conf, nil).Search(ctx, b, toMove)
}

// Move returns the most visited column.
func (m MCTSMover) Move(ctx context.Context, b game.Board, toMove game.Player) (game.Column, error) {
	res, err := m.Search(ctx, b, toMove)
	if err != nil {
		return game.NoColumn, err
	}
	return res.Move, nil
}

// RandomMover picks a uniformly random legal column.
type RandomMover struct {
	Seed int64
}

func (m RandomMover) Move(ctx context.Context, b game.Board, toMove game.Player) (game.Column, error) {
	if err := ctx.Err(); err != nil {
		return game.NoColumn, errors.WithStack(err)
	}
	moves := b.LegalMoves()
	if len(moves) == 0 || b.Winner() != game.None {
		return game.NoColumn, errors.WithStack(mcts.ErrNoLegalMoves)
	}
	src := mcts.NewSource(seedFor(m.Seed, b))
	return moves[src.Intn(len(moves))], nil
}
