package connectfour

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/connectfour/mcts"
)

// Generate runs episodes self-play games with agent A and collects their examples.
// When Config.MaxExamples is set and exceeded, a random subset of that size is kept.
func (a *Arena) Generate(ctx context.Context, episodes int) ([]Example, error) {
	var ex []Example
	for e := 0; e < episodes; e++ {
		log.Debug().Int("episode", e).Msg("self play")
		exs, err := a.SelfPlay(ctx)
		if err != nil {
			return nil, err
		}
		ex = append(ex, exs...)
	}

	if a.conf.MaxExamples > 0 && len(ex) > a.conf.MaxExamples {
		shuffleExamples(ex, mcts.NewSource(a.conf.MCTSConf.Seed))
		ex = ex[:a.conf.MaxExamples]
	}
	log.Info().Int("episodes", episodes).Int("examples", len(ex)).Msg("examples generated")
	return ex, nil
}

func shuffleExamples(examples []Example, r mcts.Source) {
	for i := range examples {
		j := r.Intn(i + 1)
		examples[i], examples[j] = examples[j], examples[i]
	}
}
