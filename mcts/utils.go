package mcts

import (
	"github.com/samber/lo"

	"github.com/connectfour/game"
)

// Result is the outcome of one Search.
type Result struct {
	Move       game.Column // most visited root move
	Iterations int         // iterations actually run
	Stats      []MoveStat  // one per root child, in expansion order
	Tree       *Tree
}

// MoveStat summarises a root child.
type MoveStat struct {
	Move   game.Column
	Visits uint32
	Score  float32
}

// Policy returns the visit distribution over all cols columns.
// Columns that were never expanded get 0.
func (r Result) Policy(cols int) []float32 {
	retVal := make([]float32, cols)
	var sum float32
	for _, s := range r.Stats {
		if int(s.Move) < cols {
			retVal[s.Move] = float32(s.Visits)
			sum += float32(s.Visits)
		}
	}
	if sum == 0 {
		return retVal
	}
	for i := range retVal {
		retVal[i] /= sum
	}
	return retVal
}

// Child returns the root child for move, or nil if the move was never expanded.
func (t *Tree) Child(move game.Column) *Node {
	kid := t.findChild(t.root, move)
	if !kid.isValid() {
		return nil
	}
	return t.nodeFromNaughty(kid)
}

// bestChild returns the root child with the most visits, the earliest on ties.
func (t *Tree) bestChild() naughty {
	children := t.Children(t.root)
	if len(children) == 0 {
		return nilNode
	}
	return lo.MaxBy(children, func(a, b naughty) bool {
		return t.nodeFromNaughty(a).visits > t.nodeFromNaughty(b).visits
	})
}

func (t *Tree) rootStats() []MoveStat {
	return lo.Map(t.Children(t.root), func(kid naughty, _ int) MoveStat {
		n := t.nodeFromNaughty(kid)
		return MoveStat{Move: n.move, Visits: n.visits, Score: n.score}
	})
}
