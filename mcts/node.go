package mcts

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/connectfour/game"
)

type Node struct {
	id     naughty
	parent naughty     // nilNode at the root
	move   game.Column // the move that led here, game.NoColumn at the root

	board  game.Board
	player game.Player // to move at board

	untried  []game.Column // legal moves without a child yet
	terminal bool

	visits uint32  // completed iterations through this node
	score  float32 // sum of the results credited to this node
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v, Move: %v, Player: %v, Visits %v, Score %v, Terminal: %v}",
		n.id, n.move, n.player, n.visits, n.score, n.terminal)
}

func (n *Node) ID() int { return int(n.id) }

// Move gets the move associated with the node.
func (n *Node) Move() game.Column { return n.move }

// Player is the side to move at this node.
func (n *Node) Player() game.Player { return n.player }

// Board is the position at this node.
func (n *Node) Board() game.Board { return n.board }

func (n *Node) Visits() uint32  { return n.visits }
func (n *Node) Score() float32  { return n.score }
func (n *Node) IsTerminal() bool { return n.terminal }

// Mean is the average credited result, 0 for an unvisited node.
func (n *Node) Mean() float32 {
	if n.visits == 0 {
		return 0
	}
	return n.score / float32(n.visits)
}

// Update records one completed iteration with the given result.
func (n *Node) Update(score float32) {
	n.visits++
	n.score += score
}

// ucb1 is the upper confidence bound of a child given ln(parent visits).
//
//	UCB1 = score/visits + C * sqrt(ln(parentVisits)/visits)
//
// An unvisited child is always preferred.
func (n *Node) ucb1(exploration, logParentVisits float32) float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	visits := float32(n.visits)
	return n.score/visits + exploration*math32.Sqrt(logParentVisits/visits)
}

// Select returns the child with the highest UCB1 score. Ties go to the earliest child.
func (t *Tree) Select(of naughty) naughty {
	parent := t.nodeFromNaughty(of)
	logParentVisits := math32.Log(float32(parent.visits))

	best := nilNode
	bestValue := math32.Inf(-1)
	for _, kid := range t.Children(of) {
		if v := t.nodeFromNaughty(kid).ucb1(t.exploration, logParentVisits); v > bestValue || best == nilNode {
			bestValue = v
			best = kid
		}
	}
	if best == nilNode {
		panic("Cannot return nil")
	}
	return best
}

// countChildren counts the descendants of a node.
func (t *Tree) countChildren(of naughty) (retVal int) {
	for _, kid := range t.Children(of) {
		retVal += t.countChildren(kid) + 1
	}
	return
}

// findChild finds the child that was produced by move.
func (t *Tree) findChild(of naughty, move game.Column) naughty {
	for _, kid := range t.Children(of) {
		if t.nodeFromNaughty(kid).move == move {
			return kid
		}
	}
	return nilNode
}
