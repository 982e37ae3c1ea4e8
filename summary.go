package connectfour

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/connectfour/game"
)

// Summary aggregates a series of games from one agent's point of view.
type Summary struct {
	Games  int
	Wins   int
	Losses int
	Draws  int

	WinRate  float64
	DrawRate float64
	Score    float64 // mean points per game: 1 for a win, 0.5 for a draw
	StdErr   float64 // standard error of Score
}

func summarize(outcomes []game.Outcome) Summary {
	var s Summary
	s.Games = len(outcomes)
	if s.Games == 0 {
		return s
	}

	points := make([]float64, len(outcomes))
	for i, o := range outcomes {
		switch o {
		case game.Win:
			s.Wins++
			points[i] = 1
		case game.Loss:
			s.Losses++
		case game.Draw:
			s.Draws++
			points[i] = 0.5
		}
	}
	n := float64(s.Games)
	s.WinRate = float64(s.Wins) / n
	s.DrawRate = float64(s.Draws) / n

	mean, std := stat.MeanStdDev(points, nil)
	s.Score = mean
	if s.Games > 1 {
		s.StdErr = stat.StdErr(std, n)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games: %d wins, %d losses, %d draws (score %.3f ± %.3f)",
		s.Games, s.Wins, s.Losses, s.Draws, s.Score, s.StdErr)
}
