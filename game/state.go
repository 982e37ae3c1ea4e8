package game

import "fmt"

// Column is a move: the index of the column a piece is dropped into.
type Column int

const (
	// NoColumn is returned alongside errors where a Column is expected.
	NoColumn Column = -1

	DefaultRows = 6
	DefaultCols = 7
	MinRows     = 4
	MinCols     = 4

	// WinLength is the number of consecutive pieces needed to win.
	WinLength = 4
)

// Player identifies a side. None marks an empty cell, or no winner.
type Player int8

const (
	None Player = iota
	Player1
	Player2
)

// Opponent returns the other side. Opponent(None) is None.
func Opponent(p Player) Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return None
}

// Opponent returns the other side.
func (p Player) Opponent() Player { return Opponent(p) }

// IsValid returns true for Player1 and Player2.
func (p Player) IsValid() bool { return p == Player1 || p == Player2 }

func (p Player) String() string {
	switch p {
	case None:
		return "None"
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Outcome is a terminal classification of a board from one player's point of view.
type Outcome uint8

const (
	NotTerminal Outcome = iota
	Win
	Loss
	Draw
)

func (o Outcome) String() string {
	switch o {
	case NotTerminal:
		return "NotTerminal"
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	case Draw:
		return "Draw"
	}
	return "UNKNOWN OUTCOME"
}

// Score maps an outcome to the reward used by playouts: +1, -1 or 0.
func (o Outcome) Score() float32 {
	switch o {
	case Win:
		return 1
	case Loss:
		return -1
	}
	return 0
}
