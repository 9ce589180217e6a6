package game

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Standing is one player's final (or, before the end, provisional) result.
type Standing struct {
	Player     int    `json:"player"`
	Name       string `json:"name"`
	VP         int    `json:"vp"`
	Area       int    `json:"area"`
	CultBonus  int    `json:"cult_bonus"`
	AreaBonus  int    `json:"area_bonus"`
	ResourceVP int    `json:"resource_vp"`
}

// endGame runs the one-time final scoring and ends the game.
func (g *Game) endGame() error {
	cultBonus := g.cults.EndGameBonus()
	areas := g.areas()

	standings := make([]Standing, len(g.players))
	for i, p := range g.players {
		areaBonus := areas[i] * g.rules.Scoring.AreaVP
		if err := p.GainVP(cultBonus[i] + areaBonus); err != nil {
			return err
		}
		resources := p.ConvertLeftovers(g.rules.Scoring.ResourceRate)
		standings[i] = Standing{
			Player:     i,
			Name:       p.Name(),
			VP:         p.VP(),
			Area:       areas[i],
			CultBonus:  cultBonus[i],
			AreaBonus:  areaBonus,
			ResourceVP: resources,
		}
	}
	sortStandings(standings)
	g.standings = standings
	g.phase = EndedPhase

	winner := standings[0]
	log.Info().Int("winner", winner.Player).Str("name", winner.Name).Int("vp", winner.VP).Int("round", g.round).Msg("game ended")
	return nil
}

func (g *Game) areas() []int {
	areas := make([]int, len(g.players))
	for i, p := range g.players {
		areas[i] = g.board.LargestConnectedArea(i, p.Shipping())
	}
	return areas
}

// sortStandings orders by VP, then larger area, then lower seat.
func sortStandings(s []Standing) {
	slices.SortStableFunc(s, func(a, b Standing) int {
		if a.VP != b.VP {
			return b.VP - a.VP
		}
		if a.Area != b.Area {
			return b.Area - a.Area
		}
		return a.Player - b.Player
	})
}

// Standings returns the final standings once the game has ended, and the
// current VP ranking before that.
func (g *Game) Standings() []Standing {
	if g.phase == EndedPhase {
		return slices.Clone(g.standings)
	}
	areas := g.areas()
	standings := make([]Standing, len(g.players))
	for i, p := range g.players {
		standings[i] = Standing{Player: i, Name: p.Name(), VP: p.VP(), Area: areas[i]}
	}
	sortStandings(standings)
	return standings
}

// Winner returns the winning seat once the game has ended.
func (g *Game) Winner() (int, bool) {
	if g.phase != EndedPhase || len(g.standings) == 0 {
		return 0, false
	}
	return g.standings[0].Player, true
}
