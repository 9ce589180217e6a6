package game

import (
	"github.com/rs/zerolog/log"

	"terra/player"
	"terra/rules"
)

// Income returns what player would collect in an income phase: the base
// income plus the income of every structure they own.
func (g *Game) Income(id int) (rules.Income, error) {
	p, err := g.player(id)
	if err != nil {
		return rules.Income{}, err
	}
	return g.income(p), nil
}

func (g *Game) income(p *player.Player) rules.Income {
	total := g.rules.BaseIncome
	for _, c := range p.Structures() {
		kind, _ := p.StructureAt(c)
		if def, ok := g.rules.Structure(kind); ok {
			total = total.Add(def.Income)
		}
	}
	return total
}

// beginRound runs the income phase and opens the action phase with order.
func (g *Game) beginRound(order []int) error {
	g.phase = IncomePhase
	for _, p := range g.players {
		if err := p.Collect(g.income(p)); err != nil {
			return err
		}
	}
	g.order = NewTurnOrder(order)
	g.phase = ActionPhase
	log.Info().Int("round", g.round).Ints("order", order).Msg("round started")
	return nil
}

// endRound settles the round once every player has passed and either starts
// the next round or ends the game.
func (g *Game) endRound() error {
	g.phase = RoundEndPhase
	if err := g.scoreRound(); err != nil {
		return err
	}
	next := g.order.NextRound()

	g.phase = CleanupPhase
	for i, p := range g.players {
		p.ResetRound()
		g.tally[i] = map[rules.Scoring]int{}
	}
	g.offers = nil

	if g.round >= g.maxRounds {
		return g.endGame()
	}
	g.round++
	return g.beginRound(next)
}

func (g *Game) scoreRound() error {
	bonus, ok := g.rules.RoundBonus(g.round)
	if !ok {
		return nil
	}
	for i, p := range g.players {
		if err := p.GainVP(g.tally[i][bonus.Scoring] * bonus.VP); err != nil {
			return err
		}
	}
	log.Info().Int("round", g.round).Str("scoring", bonus.Scoring.String()).Int("vp", bonus.VP).Msg("round scored")
	return nil
}
