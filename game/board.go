package game

import (
	"strings"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// directions scanned for a run: horizontal, vertical, diagonal up-right, diagonal down-right.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// Board is a rows x cols grid. Row 0 is the bottom row.
//
// A Board is a value: Drop returns a new Board and leaves the receiver untouched,
// so a board handed to a search is never modified by it. DropInPlace and Undo mutate
// the receiver and are meant for the live game only.
//
// The zero Board has no cells and is not usable; create boards with NewBoard.
type Board struct {
	rows, cols int
	cells      []Player // row-major, cells[row*cols+col]
	heights    []int    // number of pieces in each column
	moves      int
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) (Board, error) {
	if rows < MinRows || cols < MinCols {
		return Board{}, errors.Wrapf(ErrInvalidDimensions, "%dx%d (minimum %dx%d)", rows, cols, MinRows, MinCols)
	}
	return Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]Player, rows*cols),
		heights: make([]int, cols),
	}, nil
}

// MustNewBoard is like NewBoard but panics on invalid dimensions.
func MustNewBoard(rows, cols int) Board {
	b, err := NewBoard(rows, cols)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Rows() int { return b.rows }
func (b Board) Cols() int { return b.cols }

// MoveCount is the number of pieces on the board.
func (b Board) MoveCount() int { return b.moves }

// At returns the occupant of a cell, None if empty or out of bounds.
func (b Board) At(row, col int) Player {
	if !b.inBounds(row, col) {
		return None
	}
	return b.cells[row*b.cols+col]
}

// Height is the number of pieces in a column.
func (b Board) Height(c Column) int {
	if c < 0 || int(c) >= b.cols {
		return 0
	}
	return b.heights[c]
}

func (b Board) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.rows && col < b.cols
}

// IsLegal returns true if a piece can be dropped into c.
func (b Board) IsLegal(c Column) bool {
	return c >= 0 && int(c) < b.cols && b.heights[c] < b.rows
}

// LegalMoves lists the columns whose top cell is empty, in ascending order.
// It does not consider wins: a won board may still have legal columns.
func (b Board) LegalMoves() []Column {
	retVal := make([]Column, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if b.heights[c] < b.rows {
			retVal = append(retVal, Column(c))
		}
	}
	return retVal
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	retVal := b
	retVal.cells = make([]Player, len(b.cells))
	copy(retVal.cells, b.cells)
	retVal.heights = make([]int, len(b.heights))
	copy(retVal.heights, b.heights)
	return retVal
}

// Drop returns a copy of the board with p's piece in the lowest empty cell of c.
func (b Board) Drop(c Column, p Player) (Board, error) {
	retVal := b.Clone()
	if _, err := retVal.DropInPlace(c, p); err != nil {
		return b, err
	}
	return retVal, nil
}

// DropInPlace places p's piece in c and returns the row it landed on.
func (b *Board) DropInPlace(c Column, p Player) (row int, err error) {
	if !p.IsValid() {
		return -1, errors.Wrapf(ErrInvalidPlayer, "%v", p)
	}
	if !b.IsLegal(c) {
		return -1, errors.Wrapf(ErrIllegalMove, "column %d", c)
	}
	row = b.heights[c]
	b.cells[row*b.cols+int(c)] = p
	b.heights[c]++
	b.moves++
	return row, nil
}

// Undo removes the topmost piece of c. Undoing the column of the most recent Drop
// restores the previous board exactly.
func (b *Board) Undo(c Column) error {
	if c < 0 || int(c) >= b.cols {
		return errors.Wrapf(ErrIllegalMove, "column %d", c)
	}
	if b.heights[c] == 0 {
		return errors.Wrapf(ErrEmptyColumn, "column %d", c)
	}
	b.heights[c]--
	b.cells[b.heights[c]*b.cols+int(c)] = None
	b.moves--
	return nil
}

// HasWon returns true if p has WinLength or more consecutive pieces in any orientation.
// The whole board is scanned.
func (b Board) HasWon(p Player) bool {
	if !p.IsValid() {
		return false
	}
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if b.cells[row*b.cols+col] == p && b.runFrom(row, col) {
				return true
			}
		}
	}
	return false
}

// Winner returns the player holding a run, or None.
func (b Board) Winner() Player {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			if b.cells[row*b.cols+col] != None && b.runFrom(row, col) {
				return b.cells[row*b.cols+col]
			}
		}
	}
	return None
}

// runFrom reports whether a run of WinLength starts at (row, col) in any direction.
func (b Board) runFrom(row, col int) bool {
	p := b.cells[row*b.cols+col]
	for _, d := range directions {
		endRow, endCol := row+d[0]*(WinLength-1), col+d[1]*(WinLength-1)
		if !b.inBounds(endRow, endCol) {
			continue
		}
		k := 1
		for ; k < WinLength; k++ {
			if b.cells[(row+d[0]*k)*b.cols+col+d[1]*k] != p {
				break
			}
		}
		if k == WinLength {
			return true
		}
	}
	return false
}

// IsFull returns true if no column can take another piece.
func (b Board) IsFull() bool { return b.moves == b.rows*b.cols }

// IsDraw returns true if the board is full and nobody has won.
func (b Board) IsDraw() bool { return b.IsFull() && b.Winner() == None }

// IsTerminal returns true if someone has won or the board is full.
func (b Board) IsTerminal() bool { return b.IsFull() || b.Winner() != None }

// Outcome classifies the board from p's point of view.
func (b Board) Outcome(p Player) Outcome {
	switch w := b.Winner(); {
	case w == p:
		return Win
	case w == Opponent(p):
		return Loss
	case b.IsFull():
		return Draw
	}
	return NotTerminal
}

// Score is Outcome(p).Score(): +1 if p has won, -1 if the opponent has, 0 otherwise.
func (b Board) Score(p Player) float32 { return b.Outcome(p).Score() }

// Equal returns true if both boards have the same dimensions and cells.
func (b Board) Equal(other Board) bool {
	if b.rows != other.rows || b.cols != other.cols || b.moves != other.moves {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	for i := range b.heights {
		if b.heights[i] != other.heights[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash of the dimensions and cell contents.
func (b Board) Hash() uint64 {
	buf := make([]byte, 0, len(b.cells)+2)
	buf = append(buf, byte(b.rows), byte(b.cols))
	for _, c := range b.cells {
		buf = append(buf, byte(c))
	}
	return xxhash.Sum64(buf)
}

// String renders the board top row first: '.' empty, 'X' Player1, 'O' Player2.
func (b Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			switch b.cells[row*b.cols+col] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
