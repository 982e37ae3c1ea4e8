package mcts

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/connectfour/game"
)

// Accounting selects how playout results are credited to the nodes on the path.
type Accounting uint8

const (
	// PerMover scores every node from the point of view of the player who made the move
	// leading to it, negating the result at each ply.
	PerMover Accounting = iota
	// Unflipped adds the playout result, taken relative to the player to move at the
	// expanded node, unchanged to that node and every ancestor.
	Unflipped
)

func (a Accounting) String() string {
	switch a {
	case PerMover:
		return "PerMover"
	case Unflipped:
		return "Unflipped"
	}
	return "UNKNOWN ACCOUNTING"
}

// Config is the structure to configure a search.
type Config struct {
	Budget      int           `json:"budget"`      // iterations per decision
	Exploration float32       `json:"exploration"` // UCB1 exploration constant
	Timeout     time.Duration `json:"timeout"`     // optional wall-clock limit, 0 for none
	Seed        int64         `json:"seed"`        // 0 seeds from the system entropy
	Accounting  Accounting    `json:"accounting"`
}

func DefaultConfig() Config {
	return Config{
		Budget:      10000,
		Exploration: math32.Sqrt(2),
	}
}

// Validate reports every problem with the config.
func (c Config) Validate() error {
	var errs error
	if c.Budget <= 0 {
		errs = multierror.Append(errs, errors.Errorf("budget must be positive, got %d", c.Budget))
	}
	if c.Exploration < 0 || math32.IsNaN(c.Exploration) || math32.IsInf(c.Exploration, 0) {
		errs = multierror.Append(errs, errors.Errorf("exploration must be a finite non-negative number, got %v", c.Exploration))
	}
	if c.Timeout < 0 {
		errs = multierror.Append(errs, errors.Errorf("timeout must not be negative, got %v", c.Timeout))
	}
	if c.Accounting > Unflipped {
		errs = multierror.Append(errs, errors.Errorf("unknown accounting %d", c.Accounting))
	}
	return errs
}

func (c Config) IsValid() bool { return c.Validate() == nil }

// Tree is the search tree of a single decision. Nodes live in one arena and refer to
// each other by handle; a node owns its children, the parent handle is a back-reference.
type Tree struct {
	nodes    []Node
	children [][]naughty
	root     naughty

	exploration float32
}

func newTree(exploration float32, capacity int) *Tree {
	return &Tree{
		nodes:       make([]Node, 0, capacity),
		children:    make([][]naughty, 0, capacity),
		root:        nilNode,
		exploration: exploration,
	}
}

// New allocates a node for the position b with toMove to play. move is the column
// that produced b from parent's position.
//
// Allocation may grow the arena: *Node pointers obtained earlier must be refetched.
func (t *Tree) New(b game.Board, toMove game.Player, move game.Column, parent naughty) (retVal naughty) {
	retVal = naughty(len(t.nodes))
	N := Node{
		id:     retVal,
		parent: parent,
		move:   move,
		board:  b,
		player: toMove,
	}
	if b.Winner() != game.None {
		N.terminal = true
	} else {
		N.untried = b.LegalMoves()
		N.terminal = len(N.untried) == 0
	}
	t.nodes = append(t.nodes, N)
	t.children = append(t.children, nil)
	if parent.isValid() {
		t.children[parent] = append(t.children[parent], retVal)
	} else {
		t.root = retVal
	}
	return retVal
}

// nodeFromNaughty gets the node given the handle.
func (t *Tree) nodeFromNaughty(ptr naughty) *Node {
	return &t.nodes[int(ptr)]
}

// Children returns a list of children in the order they were expanded.
func (t *Tree) Children(of naughty) []naughty {
	return t.children[of]
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodeFromNaughty(t.root) }

// Len is the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// isFullyExpanded returns true if the node has a child for every move from its position.
func (t *Tree) isFullyExpanded(n naughty) bool {
	return len(t.nodes[n].untried) == 0
}

func (t *Tree) isLeaf(n naughty) bool {
	return len(t.children[n]) == 0
}
