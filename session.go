package connectfour

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/connectfour/game"
)

// Placement is one piece put on the board during a session.
type Placement struct {
	Row    int
	Col    game.Column
	Player game.Player
}

// Session is one live game between two profiles, optionally against the computer.
// A Session is not safe for concurrent use.
type Session struct {
	conf     Config
	board    game.Board
	current  game.Player
	history  []Placement
	message  string
	over     bool
	profiles [2]*Profile
	ai       Mover
}

// NewSession starts a game on a conf.Rows by conf.Cols grid with Player1 to move.
// Nil profiles get default names. The computer side, if any, searches with conf.MCTSConf.
func NewSession(conf Config, p1, p2 *Profile) (*Session, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if p1 == nil {
		p1 = NewProfile("Player One")
	}
	if p2 == nil {
		p2 = NewProfile("Player Two")
	}
	s := &Session{
		conf:     conf,
		profiles: [2]*Profile{p1, p2},
		ai:       MCTSMover{Conf: conf.MCTSConf},
	}
	s.reset(game.MustNewBoard(conf.Rows, conf.Cols))
	return s, nil
}

// WithMover replaces the computer's move policy.
func (s *Session) WithMover(m Mover) *Session {
	s.ai = m
	return s
}

func (s *Session) reset(b game.Board) {
	s.board = b
	s.current = game.Player1
	s.history = s.history[:0]
	s.message = ""
	s.over = false
}

// Board returns a copy of the live board.
func (s *Session) Board() game.Board { return s.board.Clone() }

func (s *Session) CurrentPlayer() game.Player { return s.current }

// History returns the placements so far, oldest first.
func (s *Session) History() []Placement {
	retVal := make([]Placement, len(s.history))
	copy(retVal, s.history)
	return retVal
}

func (s *Session) MoveCount() int      { return len(s.history) }
func (s *Session) RemainingMoves() int { return s.board.Rows()*s.board.Cols() - len(s.history) }
func (s *Session) Message() string     { return s.message }
func (s *Session) IsOver() bool        { return s.over }
func (s *Session) Winner() game.Player { return s.board.Winner() }

// Profile returns the profile of p, nil for an invalid player.
func (s *Session) Profile(p game.Player) *Profile {
	if !p.IsValid() {
		return nil
	}
	return s.profiles[p-1]
}

// Play drops a piece for the current player in col. Against the computer, the
// computer's reply is made before Play returns unless the game ended.
func (s *Session) Play(ctx context.Context, col game.Column) error {
	if s.over {
		return errors.WithStack(ErrGameOver)
	}
	if s.conf.VsAI && s.current == s.conf.AIPlayer {
		return errors.WithStack(ErrNotYourTurn)
	}
	if err := s.apply(col); err != nil {
		return err
	}
	if s.conf.VsAI && !s.over {
		return s.AIMove(ctx)
	}
	return nil
}

// AIMove lets the computer play the current side.
func (s *Session) AIMove(ctx context.Context) error {
	if s.over {
		return errors.WithStack(ErrGameOver)
	}
	col, err := s.ai.Move(ctx, s.board.Clone(), s.current)
	if err != nil {
		return errors.WithMessage(err, "computer move")
	}
	log.Debug().Int("col", int(col)).Stringer("player", s.current).Msg("computer move")
	return s.apply(col)
}

func (s *Session) apply(col game.Column) error {
	mover := s.current
	row, err := s.board.DropInPlace(col, mover)
	if err != nil {
		return err
	}
	s.history = append(s.history, Placement{Row: row, Col: col, Player: mover})

	switch {
	case s.board.HasWon(mover):
		s.over = true
		s.message = fmt.Sprintf("%s wins!", s.Profile(mover).Name)
		RecordWin(s.profiles[0], s.profiles[1], mover)
	case s.board.IsFull():
		s.over = true
		s.message = "Draw!"
		RecordWin(s.profiles[0], s.profiles[1], game.None)
	default:
		s.message = ""
		s.current = mover.Opponent()
	}
	if s.over {
		log.Info().Str("result", s.message).Int("moves", len(s.history)).Msg("session over")
	}
	return nil
}

// Undo removes the last piece and gives the turn back to the player who placed it.
// A finished game is reopened; results already recorded on the profiles stay.
func (s *Session) Undo() error {
	if len(s.history) == 0 {
		s.message = "No moves to undo"
		return errors.WithStack(ErrNothingToUndo)
	}
	last := s.history[len(s.history)-1]
	if err := s.board.Undo(last.Col); err != nil {
		return err
	}
	s.history = s.history[:len(s.history)-1]
	s.current = last.Player
	s.over = false
	s.message = "Move undone"
	return nil
}

// Restart clears the board, keeping the grid size and the profiles.
func (s *Session) Restart() {
	s.reset(game.MustNewBoard(s.board.Rows(), s.board.Cols()))
}

// Resize restarts on a rows by cols grid.
func (s *Session) Resize(rows, cols int) error {
	b, err := game.NewBoard(rows, cols)
	if err != nil {
		return err
	}
	s.conf.Rows, s.conf.Cols = rows, cols
	s.reset(b)
	return nil
}

// SetCurrentPlayer hands the turn to p.
func (s *Session) SetCurrentPlayer(p game.Player) error {
	if !p.IsValid() {
		return errors.Wrapf(game.ErrInvalidPlayer, "%v", p)
	}
	s.current = p
	return nil
}
