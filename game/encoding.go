package game

import "gorgonia.org/tensor"

// Features is the number of planes produced by Encode.
const Features = 3

// Encode encodes the board as a Features x rows x cols tensor, seen from toMove:
// plane 0 holds toMove's pieces, plane 1 the opponent's, plane 2 is all ones when
// toMove is Player1 and all zeros otherwise.
func Encode(b Board, toMove Player) *tensor.Dense {
	plane := b.rows * b.cols
	backing := make([]float32, Features*plane)
	opp := Opponent(toMove)
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			i := row*b.cols + col
			switch c := b.cells[i]; {
			case c == None:
			case c == toMove:
				backing[i] = 1
			case c == opp:
				backing[plane+i] = 1
			}
		}
	}
	if toMove == Player1 {
		for i := 2 * plane; i < len(backing); i++ {
			backing[i] = 1
		}
	}
	return tensor.New(tensor.WithShape(Features, b.rows, b.cols), tensor.WithBacking(backing))
}
