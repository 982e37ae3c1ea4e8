package connectfour

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectfour/game"
)

func testConf(budget int) Config {
	conf := DefaultConfig()
	conf.MCTSConf.Budget = budget
	conf.MCTSConf.Seed = 7
	return conf
}

func mctsMover(budget int, seed int64) MCTSMover {
	conf := testConf(budget).MCTSConf
	conf.Seed = seed
	return MCTSMover{Conf: conf}
}

func TestConfigValidate(t *testing.T) {
	assert.True(t, DefaultConfig().IsValid())

	conf := DefaultConfig()
	conf.Rows = 3
	conf.MCTSConf.Budget = 0
	conf.VsAI = true
	conf.AIPlayer = game.None
	conf.MaxExamples = -1
	err := conf.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 errors occurred")
	assert.False(t, conf.IsValid())
}

func TestMoversAreReproducible(t *testing.T) {
	ctx := context.Background()
	b, next, err := game.Replay(6, 7, game.Player1, 3, 3, 2)
	require.NoError(t, err)

	m := mctsMover(200, 11)
	first, err := m.Move(ctx, b, next)
	require.NoError(t, err)
	second, err := m.Move(ctx, b, next)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	r := RandomMover{Seed: 5}
	c1, err := r.Move(ctx, b, next)
	require.NoError(t, err)
	c2, err := r.Move(ctx, b, next)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
	assert.True(t, b.IsLegal(c1))
}

func TestRandomMoverDecidedBoard(t *testing.T) {
	b, next, err := game.Replay(6, 7, game.Player1, 0, 0, 1, 1, 2, 2, 3)
	require.NoError(t, err)
	_, err = RandomMover{Seed: 1}.Move(context.Background(), b, next)
	assert.Error(t, err)
}

func TestSeedFor(t *testing.T) {
	b := game.MustNewBoard(6, 7)
	assert.Equal(t, int64(0), seedFor(0, b))
	assert.NotEqual(t, int64(0), seedFor(42, b))
	assert.Equal(t, seedFor(42, b), seedFor(42, b.Clone()))
}

func TestArenaPlay(t *testing.T) {
	a := NewAgent("A", game.Player2, RandomMover{Seed: 1})
	b := NewAgent("B", game.Player1, RandomMover{Seed: 2})
	ar := MakeArena(testConf(10), a, b)

	winner, err := ar.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ar.GameNumber())
	assert.Equal(t, float32(1), a.Wins+a.Loss+a.Draw)
	assert.Equal(t, float32(1), b.Wins+b.Loss+b.Draw)
	assert.Equal(t, a.Wins, b.Loss)
	assert.Equal(t, a.Draw, b.Draw)
	switch winner {
	case a:
		assert.Equal(t, float32(1), a.Wins)
	case b:
		assert.Equal(t, float32(1), b.Wins)
	default:
		assert.Equal(t, float32(1), a.Draw)
	}

	a.resetStats()
	assert.Zero(t, a.Wins+a.Loss+a.Draw)
}

func TestArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := NewAgent("A", game.Player1, mctsMover(100, 1))
	b := NewAgent("B", game.Player2, RandomMover{Seed: 2})
	_, err := MakeArena(testConf(100), a, b).Play(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTournament(t *testing.T) {
	a := NewAgent("A", game.Player1, RandomMover{Seed: 3})
	b := NewAgent("B", game.Player2, RandomMover{Seed: 4})
	ar := MakeArena(testConf(10), a, b)

	s, err := ar.Tournament(context.Background(), 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Games)
	assert.Equal(t, 10, s.Wins+s.Losses+s.Draws)
	assert.Equal(t, 10, ar.GameNumber())
	assert.Equal(t, float32(s.Wins), a.Wins)
	assert.Equal(t, float32(s.Losses), b.Wins)
	assert.Equal(t, float32(s.Draws), b.Draw)
	assert.GreaterOrEqual(t, s.Score, 0.0)
	assert.LessOrEqual(t, s.Score, 1.0)
	assert.Equal(t, game.Player1, a.Player)

	_, err = ar.Tournament(context.Background(), 0, 1)
	assert.Error(t, err)
}

func TestTournamentSearchBeatsRandom(t *testing.T) {
	a := NewAgent("mcts", game.Player1, mctsMover(300, 9))
	b := NewAgent("random", game.Player2, RandomMover{Seed: 10})
	s, err := MakeArena(testConf(300), a, b).Tournament(context.Background(), 6, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Wins, 5, "%v", s)
}

func TestSelfPlay(t *testing.T) {
	conf := testConf(40)
	a := NewAgent("A", game.Player1, mctsMover(40, 3))
	ar := MakeArena(conf, a, NewAgent("B", game.Player2, RandomMover{}))

	ex, err := ar.SelfPlay(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ex), game.WinLength*2-1)
	for i, e := range ex {
		assert.Equal(t, []int{game.Features, 6, 7}, []int(e.Board.Shape()))
		require.Len(t, e.Policy, 7)
		var sum float32
		for _, v := range e.Policy {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-5)
		assert.Contains(t, []float32{-1, 0, 1}, e.Value)
		if i > 0 {
			assert.Equal(t, -ex[i-1].Value, e.Value)
			assert.NotEqual(t, ex[i-1].toMove, e.toMove)
		}
	}
	assert.Equal(t, game.Player1, ex[0].toMove)
}

func TestSelfPlayNeedsSearcher(t *testing.T) {
	a := NewAgent("A", game.Player1, RandomMover{Seed: 1})
	_, err := MakeArena(testConf(10), a, a).SelfPlay(context.Background())
	assert.True(t, errors.Is(err, ErrNotSearcher))
}

func TestGenerateCapsExamples(t *testing.T) {
	conf := testConf(20)
	conf.MaxExamples = 5
	a := NewAgent("A", game.Player1, mctsMover(20, 4))
	ex, err := MakeArena(conf, a, a).Generate(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, ex, 5)
}
