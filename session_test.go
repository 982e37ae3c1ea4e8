package connectfour

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectfour/game"
)

type fixedMover game.Column

func (m fixedMover) Move(ctx context.Context, b game.Board, toMove game.Player) (game.Column, error) {
	return game.Column(m), nil
}

func newSession(t *testing.T, conf Config) *Session {
	s, err := NewSession(conf, nil, nil)
	require.NoError(t, err)
	return s
}

func playAll(t *testing.T, s *Session, cols ...game.Column) {
	for _, c := range cols {
		require.NoError(t, s.Play(context.Background(), c))
	}
}

func TestNewSession(t *testing.T) {
	s := newSession(t, DefaultConfig())
	assert.Equal(t, game.Player1, s.CurrentPlayer())
	assert.Equal(t, 42, s.RemainingMoves())
	assert.Zero(t, s.MoveCount())
	assert.False(t, s.IsOver())
	assert.Equal(t, "Player One", s.Profile(game.Player1).Name)
	assert.Equal(t, "Player Two", s.Profile(game.Player2).Name)
	assert.Nil(t, s.Profile(game.None))

	conf := DefaultConfig()
	conf.Rows = 3
	_, err := NewSession(conf, nil, nil)
	assert.True(t, errors.Is(err, game.ErrInvalidDimensions))
}

func TestSessionWin(t *testing.T) {
	p1, p2 := NewProfile("ann"), NewProfile("bob")
	s, err := NewSession(DefaultConfig(), p1, p2)
	require.NoError(t, err)

	playAll(t, s, 0, 0, 1, 1, 2, 2, 3)
	assert.True(t, s.IsOver())
	assert.Equal(t, game.Player1, s.Winner())
	assert.Equal(t, "ann wins!", s.Message())
	assert.Equal(t, 1, p1.Wins)
	assert.Equal(t, 1, p2.Losses)
	assert.Equal(t, 7, s.MoveCount())
	assert.Equal(t, 35, s.RemainingMoves())

	err = s.Play(context.Background(), 4)
	assert.True(t, errors.Is(err, ErrGameOver))
	assert.Equal(t, 7, s.MoveCount())

	h := s.History()
	assert.Equal(t, Placement{Row: 0, Col: 3, Player: game.Player1}, h[6])
	assert.Equal(t, Placement{Row: 1, Col: 0, Player: game.Player2}, h[1])
	h[0].Col = 6
	assert.Equal(t, game.Column(0), s.History()[0].Col)
}

func TestSessionDraw(t *testing.T) {
	s := newSession(t, DefaultConfig())
	for i := 0; i < 6; i++ {
		playAll(t, s, 0, 2, 1, 3, 4, 6, 5)
	}
	assert.True(t, s.IsOver())
	assert.Equal(t, "Draw!", s.Message())
	assert.Equal(t, game.None, s.Winner())
	assert.Zero(t, s.RemainingMoves())
	assert.Equal(t, 1, s.Profile(game.Player1).Draws)
	assert.Equal(t, 1, s.Profile(game.Player2).Draws)
}

func TestSessionIllegalMove(t *testing.T) {
	s := newSession(t, DefaultConfig())
	playAll(t, s, 0, 0, 0, 0, 0, 0)
	before := s.Board()

	err := s.Play(context.Background(), 0)
	assert.True(t, errors.Is(err, game.ErrIllegalMove))
	err = s.Play(context.Background(), 7)
	assert.True(t, errors.Is(err, game.ErrIllegalMove))

	assert.Equal(t, game.Player1, s.CurrentPlayer())
	assert.Equal(t, 6, s.MoveCount())
	assert.True(t, before.Equal(s.Board()))
}

func TestSessionUndo(t *testing.T) {
	s := newSession(t, DefaultConfig())
	err := s.Undo()
	assert.True(t, errors.Is(err, ErrNothingToUndo))
	assert.Equal(t, "No moves to undo", s.Message())

	playAll(t, s, 0, 0, 1, 1, 2, 2, 3)
	require.True(t, s.IsOver())

	require.NoError(t, s.Undo())
	assert.False(t, s.IsOver())
	assert.Equal(t, "Move undone", s.Message())
	assert.Equal(t, game.Player1, s.CurrentPlayer())
	assert.Equal(t, game.None, s.Board().At(0, 3))
	assert.Equal(t, 1, s.Profile(game.Player1).Wins)

	require.NoError(t, s.Undo())
	assert.Equal(t, game.Player2, s.CurrentPlayer())
	assert.Equal(t, 5, s.MoveCount())

	for s.MoveCount() > 0 {
		require.NoError(t, s.Undo())
	}
	assert.True(t, s.Board().Equal(game.MustNewBoard(6, 7)))
	assert.Equal(t, game.Player1, s.CurrentPlayer())
}

func TestSessionVsComputer(t *testing.T) {
	conf := DefaultConfig()
	conf.VsAI = true
	conf.MCTSConf.Budget = 50
	conf.MCTSConf.Seed = 3
	s := newSession(t, conf)

	playAll(t, s, 3)
	assert.Equal(t, 2, s.MoveCount())
	assert.Equal(t, game.Player1, s.CurrentPlayer())
	assert.Equal(t, game.Player2, s.History()[1].Player)

	// two undos give the turn back to the human
	require.NoError(t, s.Undo())
	assert.Equal(t, game.Player2, s.CurrentPlayer())
	err := s.Play(context.Background(), 3)
	assert.True(t, errors.Is(err, ErrNotYourTurn))
	require.NoError(t, s.Undo())
	assert.Equal(t, game.Player1, s.CurrentPlayer())
	assert.Zero(t, s.MoveCount())
}

func TestSessionComputerWins(t *testing.T) {
	conf := DefaultConfig()
	conf.VsAI = true
	s := newSession(t, conf).WithMover(fixedMover(6))

	playAll(t, s, 0, 1, 2)
	assert.False(t, s.IsOver())
	require.NoError(t, s.Play(context.Background(), 4))
	assert.True(t, s.IsOver())
	assert.Equal(t, game.Player2, s.Winner())
	assert.Equal(t, "Player Two wins!", s.Message())
	assert.Equal(t, 1, s.Profile(game.Player1).Losses)
}

func TestSessionComputerStarts(t *testing.T) {
	conf := DefaultConfig()
	conf.VsAI = true
	conf.AIPlayer = game.Player1
	s := newSession(t, conf).WithMover(fixedMover(2))

	err := s.Play(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrNotYourTurn))
	require.NoError(t, s.AIMove(context.Background()))
	assert.Equal(t, game.Player1, s.Board().At(0, 2))
	assert.Equal(t, game.Player2, s.CurrentPlayer())
}

func TestSessionRestartResize(t *testing.T) {
	s := newSession(t, DefaultConfig())
	playAll(t, s, 0, 1, 2)

	s.Restart()
	assert.Zero(t, s.MoveCount())
	assert.Equal(t, game.Player1, s.CurrentPlayer())
	assert.Equal(t, 7, s.Board().Cols())

	require.NoError(t, s.Resize(5, 8))
	assert.Equal(t, 5, s.Board().Rows())
	assert.Equal(t, 8, s.Board().Cols())
	assert.Equal(t, 40, s.RemainingMoves())

	err := s.Resize(3, 8)
	assert.True(t, errors.Is(err, game.ErrInvalidDimensions))
	assert.Equal(t, 5, s.Board().Rows())
}

func TestSetCurrentPlayer(t *testing.T) {
	s := newSession(t, DefaultConfig())
	require.NoError(t, s.SetCurrentPlayer(game.Player2))
	playAll(t, s, 4)
	assert.Equal(t, game.Player2, s.Board().At(0, 4))
	assert.Equal(t, game.Player1, s.CurrentPlayer())

	assert.True(t, errors.Is(s.SetCurrentPlayer(game.None), game.ErrInvalidPlayer))
}
