package game

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when dropping into a full or nonexistent column.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidDimensions is returned when a board is smaller than 4x4.
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	// ErrEmptyColumn is returned when undoing a move in a column that holds no pieces.
	ErrEmptyColumn = errors.New("column is empty")
	// ErrInvalidPlayer is returned when a piece is placed for None or an unknown player.
	ErrInvalidPlayer = errors.New("invalid player")
)
