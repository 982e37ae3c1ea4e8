package connectfour

import (
	"context"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/connectfour/game"
)

// Arena pits two agents against each other on a fixed grid.
// Movers are asked for one move at a time, so an Arena may run several games at once.
type Arena struct {
	conf  Config
	enc   GameEncoder
	agent *Agent // A
	other *Agent // B

	gameNumber atomic.Int64
}

// MakeArena makes an arena for two agents. A nil encoder falls back to game.Encode.
func MakeArena(conf Config, a, b *Agent) *Arena {
	enc := conf.Encoder
	if enc == nil {
		enc = game.Encode
	}
	if conf.Name == "" {
		conf.Name = "UNKNOWN GAME"
	}
	return &Arena{
		conf:  conf,
		enc:   enc,
		agent: a,
		other: b,
	}
}

// Name of the game
func (a *Arena) Name() string { return a.conf.Name }

// GameNumber returns the number of games started so far.
func (a *Arena) GameNumber() int { return int(a.gameNumber.Load()) }

// Agents returns both agents, A first.
func (a *Arena) Agents() (*Agent, *Agent) { return a.agent, a.other }

// Play plays one game with each agent on the side its Player field names and
// records the result on both. If A has no valid side it plays first.
// The winning agent is returned, nil for a draw.
func (a *Arena) Play(ctx context.Context) (*Agent, error) {
	first, second := a.agent, a.other
	if a.agent.Player == game.Player2 {
		first, second = a.other, a.agent
	}
	winner, _, err := a.playGame(ctx, first, second, nil)
	if err != nil {
		return nil, err
	}
	return a.settle(first, second, winner), nil
}

// settle records the result on both agents and returns the winner, nil for a draw.
func (a *Arena) settle(first, second *Agent, winner game.Player) *Agent {
	switch winner {
	case game.Player1:
		first.record(game.Win)
		second.record(game.Loss)
		return first
	case game.Player2:
		second.record(game.Win)
		first.record(game.Loss)
		return second
	}
	first.record(game.Draw)
	second.record(game.Draw)
	return nil
}

// playGame plays first (as Player1) against second until the game ends.
// When searcher is set, every move it makes is recorded as an Example.
func (a *Arena) playGame(ctx context.Context, first, second *Agent, searcher Searcher) (winner game.Player, examples []Example, err error) {
	n := a.gameNumber.Add(1)
	board, err := game.NewBoard(a.conf.Rows, a.conf.Cols)
	if err != nil {
		return game.None, nil, err
	}

	toMove := game.Player1
	for !board.IsTerminal() {
		current := first
		if toMove == game.Player2 {
			current = second
		}

		var col game.Column
		if searcher != nil {
			res, err := searcher.Search(ctx, board, toMove)
			if err != nil {
				return game.None, nil, errors.WithMessagef(err, "game %d, %s to move", n, current.Name)
			}
			ex := Example{
				Board:  a.enc(board, toMove),
				Policy: res.Policy(board.Cols()),
				toMove: toMove,
			}
			if validPolicies(ex.Policy) {
				examples = append(examples, ex)
			}
			col = res.Move
		} else {
			if col, err = current.Move(ctx, board, toMove); err != nil {
				return game.None, nil, errors.WithMessagef(err, "game %d, %s to move", n, current.Name)
			}
		}

		if _, err = board.DropInPlace(col, toMove); err != nil {
			return game.None, nil, errors.WithMessagef(err, "game %d, %s to move", n, current.Name)
		}
		toMove = toMove.Opponent()
	}

	winner = board.Winner()
	log.Info().
		Str("game", a.conf.Name).
		Int64("number", n).
		Str("first", first.Name).
		Str("second", second.Name).
		Stringer("winner", winner).
		Int("moves", board.MoveCount()).
		Msg("game over")
	return winner, examples, nil
}

// Tournament plays games between the two agents, alternating who moves first, with
// at most parallel games in flight. Results are recorded on both agents and summarised
// from A's point of view. A parallel value below 1 runs the games one at a time.
func (a *Arena) Tournament(ctx context.Context, games, parallel int) (Summary, error) {
	if games <= 0 {
		return Summary{}, errors.Errorf("number of games must be positive, got %d", games)
	}
	if parallel < 1 {
		parallel = 1
	}

	outcomes := make([]game.Outcome, games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			first, second := a.agent, a.other
			if i%2 == 1 {
				first, second = a.other, a.agent
			}
			winner, _, err := a.playGame(ctx, first, second, nil)
			if err != nil {
				return err
			}
			switch a.settle(first, second, winner) {
			case a.agent:
				outcomes[i] = game.Win
			case a.other:
				outcomes[i] = game.Loss
			default:
				outcomes[i] = game.Draw
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := summarize(outcomes)
	log.Info().
		Str("agent", a.agent.Name).
		Str("opponent", a.other.Name).
		Int("games", s.Games).
		Int("wins", s.Wins).
		Int("losses", s.Losses).
		Int("draws", s.Draws).
		Float64("score", s.Score).
		Float64("stderr", s.StdErr).
		Msg("tournament done")
	return s, nil
}

// SelfPlay lets agent A play against itself and records an Example for every move.
// The values are filled with the final result for each example's side to move.
// Agent A's Mover must be a Searcher.
func (a *Arena) SelfPlay(ctx context.Context) ([]Example, error) {
	s, ok := a.agent.Mover.(Searcher)
	if !ok {
		return nil, errors.Wrapf(ErrNotSearcher, "%s", a.agent.Name)
	}
	log.Debug().Str("agent", a.agent.Name).Msg("self playing")

	winner, examples, err := a.playGame(ctx, a.agent, a.agent, s)
	if err != nil {
		return nil, err
	}
	for i := range examples {
		switch {
		case winner == game.None:
			examples[i].Value = 0
		case examples[i].toMove == winner:
			examples[i].Value = 1
		default:
			examples[i].Value = -1
		}
	}
	return examples, nil
}

func validPolicies(policy []float32) bool {
	var sum float32
	for _, v := range policy {
		if math32.IsInf(v, 0) || math32.IsNaN(v) {
			return false
		}
		sum += v
	}
	return sum > 0
}
