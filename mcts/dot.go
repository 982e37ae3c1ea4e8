package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const graphName = "mcts"

// Dot renders the tree down to maxDepth plies below the root in Graphviz DOT.
// A negative maxDepth renders the whole tree.
func (t *Tree) Dot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}
	if t.root.isValid() {
		if err := t.addDot(g, t.root, 0, maxDepth); err != nil {
			return "", err
		}
	}
	return g.String(), nil
}

func (t *Tree) addDot(g *gographviz.Graph, n naughty, depth, maxDepth int) error {
	node := t.nodeFromNaughty(n)
	move := "root"
	if node.parent.isValid() {
		move = fmt.Sprintf("col %d", node.move)
	}
	attrs := map[string]string{
		"label": fmt.Sprintf(`"%s\n%v to move\nN=%d W=%.1f"`, move, node.player, node.visits, node.score),
	}
	if node.terminal {
		attrs["shape"] = "box"
	}
	if err := g.AddNode(graphName, dotName(n), attrs); err != nil {
		return errors.WithStack(err)
	}
	if node.parent.isValid() {
		if err := g.AddEdge(dotName(node.parent), dotName(n), true, nil); err != nil {
			return errors.WithStack(err)
		}
	}
	if maxDepth >= 0 && depth >= maxDepth {
		return nil
	}
	for _, kid := range t.Children(n) {
		if err := t.addDot(g, kid, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

func dotName(n naughty) string { return fmt.Sprintf("n%d", n) }
