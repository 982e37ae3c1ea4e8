package game

import "github.com/pkg/errors"

// Replay drops moves onto an empty rows x cols board, alternating sides starting with
// first. It returns the board and the side to move next.
func Replay(rows, cols int, first Player, moves ...Column) (Board, Player, error) {
	b, err := NewBoard(rows, cols)
	if err != nil {
		return b, None, err
	}
	p := first
	for i, c := range moves {
		if _, err := b.DropInPlace(c, p); err != nil {
			return b, p, errors.WithMessagef(err, "move %d", i+1)
		}
		p = Opponent(p)
	}
	return b, p, nil
}
