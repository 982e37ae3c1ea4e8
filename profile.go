package connectfour

import "github.com/connectfour/game"

// Profile is a player's name and running record. Profiles live in memory only.
type Profile struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
}

func NewProfile(name string) *Profile { return &Profile{Name: name} }

// WinRate is the percentage of decided games won, 0 when none were decided.
func (p *Profile) WinRate() float32 {
	decided := p.Wins + p.Losses
	if decided == 0 {
		return 0
	}
	return float32(p.Wins) / float32(decided) * 100
}

// TotalGames counts every finished game, draws included.
func (p *Profile) TotalGames() int { return p.Wins + p.Losses + p.Draws }

func (p *Profile) ResetStats() {
	p.Wins, p.Losses, p.Draws = 0, 0, 0
}

// RecordWin records a finished game on both profiles. A winner of game.None is a draw.
func RecordWin(p1, p2 *Profile, winner game.Player) {
	switch winner {
	case game.Player1:
		p1.Wins++
		p2.Losses++
	case game.Player2:
		p2.Wins++
		p1.Losses++
	default:
		p1.Draws++
		p2.Draws++
	}
}
