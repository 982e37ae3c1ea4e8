package mcts

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/connectfour/game"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

Each iteration runs the four classic phases from the root:
	SELECT, EXPAND, SIMULATE, BACKPROPAGATE.
The tree is private to one Search call and discarded afterwards.
*/

// maxPrealloc bounds the number of nodes allocated up front.
const maxPrealloc = 1 << 16

var (
	// ErrNoLegalMoves is returned when searching a position that is already decided.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrNoMoveFound is returned when the root was never expanded.
	ErrNoMoveFound = errors.New("no move found")
	// ErrInvalidConfig wraps the problems reported by Config.Validate.
	ErrInvalidConfig = errors.New("invalid search config")
)

// MCTS runs searches with one Config and one Source.
// It is not safe for concurrent use; separate instances are independent.
type MCTS struct {
	Config
	rand Source
}

// New creates a searcher. A nil src is replaced by NewSource(conf.Seed).
func New(conf Config, src Source) *MCTS {
	if src == nil {
		src = NewSource(conf.Seed)
	}
	return &MCTS{
		Config: conf,
		rand:   src,
	}
}

// SelectMove searches b for toMove with the default configuration and the given
// iteration budget, and returns the most visited move.
func SelectMove(b game.Board, toMove game.Player, budget int) (game.Column, error) {
	conf := DefaultConfig()
	conf.Budget = budget
	res, err := New(conf, nil).Search(context.Background(), b, toMove)
	if err != nil {
		return game.NoColumn, err
	}
	return res.Move, nil
}

// Search runs up to Budget iterations from b with toMove to play.
//
// The context and the Timeout are checked between iterations. When either stops the
// search early the best move so far is returned, provided at least one iteration ran.
func (m *MCTS) Search(ctx context.Context, b game.Board, toMove game.Player) (retVal Result, err error) {
	if err = m.Validate(); err != nil {
		return retVal, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if !toMove.IsValid() {
		return retVal, errors.Wrapf(game.ErrInvalidPlayer, "%v", toMove)
	}
	if b.Winner() != game.None || len(b.LegalMoves()) == 0 {
		return retVal, errors.WithStack(ErrNoLegalMoves)
	}

	t := newTree(m.Exploration, min(m.Budget+1, maxPrealloc))
	t.New(b.Clone(), toMove, game.NoColumn, nilNode)

	start := time.Now()
	var iter int
	for ; iter < m.Budget; iter++ {
		if ctx.Err() != nil {
			break
		}
		if m.Timeout > 0 && time.Since(start) > m.Timeout {
			break
		}
		leaf := t.selection()
		leaf = m.expansion(t, leaf)
		result := m.simulate(t.nodeFromNaughty(leaf))
		t.backpropagate(leaf, result, m.Accounting)
	}

	best := t.bestChild()
	if best == nilNode {
		if ctx.Err() != nil {
			return retVal, errors.WithStack(ctx.Err())
		}
		return retVal, errors.WithStack(ErrNoMoveFound)
	}

	retVal = Result{
		Move:       t.nodeFromNaughty(best).move,
		Iterations: iter,
		Stats:      t.rootStats(),
		Tree:       t,
	}
	log.Debug().
		Int("iterations", iter).
		Int("nodes", t.Len()).
		Int("move", int(retVal.Move)).
		Stringer("player", toMove).
		Dur("elapsed", time.Since(start)).
		Msg("search done")
	return retVal, nil
}

// selection descends from the root through fully expanded nodes along the highest UCB1
// child, and stops at the first leaf or node with untried moves.
func (t *Tree) selection() naughty {
	n := t.root
	for t.isFullyExpanded(n) && !t.isLeaf(n) {
		n = t.Select(n)
	}
	return n
}

// expansion adds one child for a uniformly chosen untried move and returns it.
// A node without untried moves is terminal and is returned unchanged.
func (m *MCTS) expansion(t *Tree, of naughty) naughty {
	n := t.nodeFromNaughty(of)
	if len(n.untried) == 0 {
		return of
	}
	i := m.rand.Intn(len(n.untried))
	move := n.untried[i]
	last := len(n.untried) - 1
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]

	b, err := n.board.Drop(move, n.player)
	if err != nil {
		panic(err) // untried moves are legal by construction
	}
	return t.New(b, game.Opponent(n.player), move, of)
}

// simulate plays uniformly random moves from n until the game ends, and returns
// the result relative to the player to move at n: +1 win, -1 loss, 0 draw.
func (m *MCTS) simulate(n *Node) float32 {
	b, p := n.board, n.player
	for b.Winner() == game.None {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		next, err := b.Drop(moves[m.rand.Intn(len(moves))], p)
		if err != nil {
			panic(err)
		}
		b, p = next, game.Opponent(p)
	}
	return b.Score(n.player)
}

// backpropagate credits result, which is relative to the player to move at from,
// to from and each of its ancestors up to the root.
func (t *Tree) backpropagate(from naughty, result float32, acc Accounting) {
	v := result
	if acc == PerMover {
		// from is credited to the player who moved into it, the opponent of from's player.
		v = -v
	}
	for n := from; n.isValid(); {
		node := t.nodeFromNaughty(n)
		node.Update(v)
		if acc == PerMover {
			v = -v
		}
		n = node.parent
	}
}
