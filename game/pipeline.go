package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"terra/board"
	"terra/hex"
	"terra/player"
	"terra/power"
	"terra/rules"
)

// Outcome reports what an accepted action did.
type Outcome struct {
	Action Action     `json:"action"`
	Cost   rules.Cost `json:"cost"`
	// Offers lists the power offers made to neighbors of a new or upgraded structure.
	Offers []PowerOffer `json:"offers,omitempty"`
	// CultPower is the power earned from cult thresholds crossed by the action.
	CultPower int   `json:"cult_power,omitempty"`
	Phase     Phase `json:"phase"`
	Round     int   `json:"round"`
}

// plan is a validated action: its cost and the mutation to run once it is paid.
type plan struct {
	cost  rules.Cost
	apply func(p *player.Player) (effect, error)
}

type effect struct {
	placed    *hex.Coord
	cultPower int
}

// Execute validates and runs one action. Validation and the affordability check
// complete before anything changes, so a failed action leaves the game untouched.
// Passing as the last active player settles the round before Execute returns.
func (g *Game) Execute(a Action) (Outcome, error) {
	if a == nil {
		return Outcome{}, wrap(ErrIllegalState, ErrUnknownAction)
	}
	p, err := g.checkTurn(a.PlayerID())
	if err != nil {
		return Outcome{}, err
	}

	var pl plan
	switch act := a.(type) {
	case Transform:
		pl, err = g.planTransform(p, act)
	case Build:
		pl, err = g.planBuild(p, act)
	case Upgrade:
		pl, err = g.planUpgrade(p, act)
	case Special:
		pl, err = g.planSpecial(p, act)
	case Pass:
		pl = plan{apply: func(p *player.Player) (effect, error) {
			p.MarkPassed()
			return effect{}, nil
		}}
	default:
		err = wrap(ErrIllegalState, fmt.Errorf("%T: %w", a, ErrUnknownAction))
	}
	if err != nil {
		return Outcome{}, err
	}

	if !pl.cost.IsZero() {
		if err := p.CanAfford(pl.cost); err != nil {
			return Outcome{}, wrap(ErrInsufficientResources, err)
		}
		if err := p.Pay(pl.cost); err != nil {
			return Outcome{}, wrap(ErrInvariantViolation, err)
		}
	}
	eff, err := pl.apply(p)
	if err != nil {
		return Outcome{}, wrap(ErrInvariantViolation, err)
	}
	if err := p.Check(); err != nil {
		return Outcome{}, wrap(ErrInvariantViolation, err)
	}

	out := Outcome{Action: a, Cost: pl.cost, CultPower: eff.cultPower}
	if eff.placed != nil {
		out.Offers = g.offerPower(p.ID(), *eff.placed)
	}
	log.Debug().
		Int("player", p.ID()).
		Int("round", g.round).
		Str("action", a.String()).
		Str("cost", pl.cost.String()).
		Int("offers", len(out.Offers)).
		Msg("action executed")

	if err := g.endTurn(a); err != nil {
		return out, err
	}
	out.Phase, out.Round = g.phase, g.round
	return out, nil
}

func (g *Game) checkTurn(id int) (*player.Player, error) {
	if err := g.requirePhase(ActionPhase); err != nil {
		return nil, err
	}
	p, err := g.player(id)
	if err != nil {
		return nil, err
	}
	if p.Passed() {
		return nil, wrap(ErrIllegalState, fmt.Errorf("player %d: %w", id, ErrAlreadyPassed))
	}
	if current, ok := g.order.Current(); !ok || current != id {
		return nil, wrap(ErrIllegalState, fmt.Errorf("player %d, current is %d: %w", id, current, ErrNotYourTurn))
	}
	return p, nil
}

func (g *Game) requirePhase(want Phase) error {
	switch g.phase {
	case want:
		return nil
	case EndedPhase:
		return wrap(ErrIllegalState, ErrGameEnded)
	default:
		return wrap(ErrIllegalState, fmt.Errorf("in %v, need %v: %w", g.phase, want, ErrWrongPhase))
	}
}

func (g *Game) endTurn(a Action) error {
	if a.Type() != PassAction {
		g.order.Advance()
		return nil
	}
	g.order.Pass(a.PlayerID())
	if !g.order.AllPassed() {
		return nil
	}
	if err := g.endRound(); err != nil {
		return wrap(ErrInvariantViolation, err)
	}
	return nil
}

func (g *Game) cellAt(at hex.Coord) (board.Cell, error) {
	cell, err := g.board.Cell(at)
	if err != nil {
		return board.Cell{}, wrap(ErrInvalidCoordinate, err)
	}
	return cell, nil
}

func placement(format string, args ...any) error {
	return wrap(ErrIllegalPlacement, fmt.Errorf(format, args...))
}

func (g *Game) planTransform(p *player.Player, a Transform) (plan, error) {
	cell, err := g.cellAt(a.At)
	if err != nil {
		return plan{}, err
	}
	cycle := g.rules.Cycle()
	if cell.Terrain == a.Terrain {
		return plan{}, placement("%v is already %v: %w", a.At, a.Terrain, ErrSameTerrain)
	}
	if cell.Occupied() {
		return plan{}, placement("%v: %w", a.At, board.ErrCellOccupied)
	}
	if p.HasStructures() && !g.board.IsAdjacentTo(a.At, p.ID()) {
		return plan{}, placement("%v: %w", a.At, ErrNotAdjacent)
	}
	distance, err := cycle.Distance(cell.Terrain, a.Terrain)
	if err != nil {
		return plan{}, wrap(ErrIllegalPlacement, err)
	}

	spades := p.Ability().TerrainCost(distance)
	return plan{
		cost: rules.Cost{Spades: spades},
		apply: func(p *player.Player) (effect, error) {
			if err := g.board.SetTerrain(a.At, a.Terrain); err != nil {
				return effect{}, err
			}
			g.tally[p.ID()][rules.ScoreSpade] += spades
			return effect{}, nil
		},
	}, nil
}

func (g *Game) planBuild(p *player.Player, a Build) (plan, error) {
	cell, err := g.cellAt(a.At)
	if err != nil {
		return plan{}, err
	}
	def, ok := g.rules.Structure(a.Kind)
	if !ok || def.UpgradesFrom != nil {
		return plan{}, placement("%v: %w", a.Kind, ErrNotBuildable)
	}
	if cell.Occupied() {
		return plan{}, placement("%v: %w", a.At, board.ErrCellOccupied)
	}
	if cell.Terrain != p.Home() {
		return plan{}, placement("%v is %v, home is %v: %w", a.At, cell.Terrain, p.Home(), ErrWrongTerrain)
	}
	if p.HasStructures() && !g.board.IsReachableBy(a.At, p.ID(), p.Shipping()) {
		return plan{}, placement("%v with shipping %d: %w", a.At, p.Shipping(), ErrNotAdjacent)
	}
	if p.Supply(a.Kind) <= 0 {
		return plan{}, placement("%v: %w", a.Kind, player.ErrSupplyExhausted)
	}

	return plan{
		cost: p.Ability().BuildCost(def.Cost),
		apply: func(p *player.Player) (effect, error) {
			if err := g.board.PlaceStructure(a.At, a.Kind, p.ID()); err != nil {
				return effect{}, err
			}
			if err := p.TakeSupply(a.Kind); err != nil {
				return effect{}, err
			}
			p.AddStructure(a.At, a.Kind)
			return g.settleStructure(p, a.At, cell.Terrain, def)
		},
	}, nil
}

func (g *Game) planUpgrade(p *player.Player, a Upgrade) (plan, error) {
	cell, err := g.cellAt(a.At)
	if err != nil {
		return plan{}, err
	}
	if cell.Structure == nil {
		return plan{}, placement("%v: %w", a.At, board.ErrEmptyCell)
	}
	if cell.Structure.Owner != p.ID() {
		return plan{}, placement("%v owned by player %d: %w", a.At, cell.Structure.Owner, ErrNotOwner)
	}
	from := cell.Structure.Kind
	def, ok := g.rules.Structure(a.Kind)
	if !ok || def.UpgradesFrom == nil || *def.UpgradesFrom != from {
		return plan{}, placement("%v to %v: %w", from, a.Kind, ErrInvalidUpgrade)
	}
	if p.Supply(a.Kind) <= 0 {
		return plan{}, placement("%v: %w", a.Kind, player.ErrSupplyExhausted)
	}

	cost := def.Cost
	if def.NeighborCost != nil && len(g.board.AdjacentOwners(a.At, p.ID())) > 0 {
		cost = *def.NeighborCost
	}
	return plan{
		cost: p.Ability().BuildCost(cost),
		apply: func(p *player.Player) (effect, error) {
			if _, err := g.board.ReplaceStructure(a.At, a.Kind); err != nil {
				return effect{}, err
			}
			if err := p.TakeSupply(a.Kind); err != nil {
				return effect{}, err
			}
			p.ReturnSupply(from)
			p.ReplaceStructure(a.At, a.Kind)
			return g.settleStructure(p, a.At, cell.Terrain, def)
		},
	}, nil
}

// settleStructure awards VP and cult steps for a structure just built or upgraded.
func (g *Game) settleStructure(p *player.Player, at hex.Coord, terrain board.Terrain, def rules.Structure) (effect, error) {
	if err := p.GainVP(def.VP); err != nil {
		return effect{}, err
	}
	switch def.Kind {
	case board.Dwelling:
		g.tally[p.ID()][rules.ScoreDwelling]++
	case board.TradingHouse:
		g.tally[p.ID()][rules.ScoreTradingHouse]++
	case board.Temple:
		g.tally[p.ID()][rules.ScoreTemple]++
	case board.Stronghold, board.Sanctuary:
		g.tally[p.ID()][rules.ScoreStrongholdSanctuary]++
	}

	eff := effect{placed: &at}
	track, ok := g.rules.TrackFor(terrain)
	if !ok || def.CultSteps == 0 {
		return eff, nil
	}
	moved, gained, err := g.cults.Advance(track, p.ID(), def.CultSteps)
	if err != nil {
		return effect{}, err
	}
	g.tally[p.ID()][rules.ScoreCult] += moved
	if err := p.GainPower(gained); err != nil {
		return effect{}, err
	}
	eff.cultPower = gained
	return eff, nil
}

func (g *Game) planSpecial(p *player.Player, a Special) (plan, error) {
	def, ok := g.rules.Special(a.Kind)
	if !ok {
		return plan{}, wrap(ErrIllegalState, fmt.Errorf("%v: %w", a.Kind, ErrUnknownAction))
	}

	var extra func(p *player.Player) error
	switch a.Kind {
	case rules.Sacrifice:
		if a.Amount < 1 {
			return plan{}, wrap(ErrIllegalState, fmt.Errorf("sacrifice %d: %w", a.Amount, power.ErrNegativeAmount))
		}
		if !p.Power().CanSacrifice(a.Amount) {
			return plan{}, wrap(ErrInsufficientResources, fmt.Errorf("sacrifice %d with %d in bowl II: %w",
				a.Amount, p.Power().State().II, power.ErrInsufficientTokens))
		}
		extra = func(p *player.Player) error { return p.Sacrifice(a.Amount) }
	case rules.AdvanceShipping:
		if p.Shipping() >= def.Max {
			return plan{}, wrap(ErrIllegalState, fmt.Errorf("shipping %d: %w", p.Shipping(), player.ErrMaxLevel))
		}
		extra = func(p *player.Player) error { return p.AdvanceShipping(def.Max) }
	case rules.AdvanceTerraforming:
		if p.Terraforming() >= def.Max {
			return plan{}, wrap(ErrIllegalState, fmt.Errorf("terraforming %d: %w", p.Terraforming(), player.ErrMaxLevel))
		}
		extra = func(p *player.Player) error { return p.AdvanceTerraforming(def.Max) }
	}

	spades := def.Spades
	if spades > 0 {
		spades += p.Ability().BonusSpades()
	}
	return plan{
		cost: def.Cost,
		apply: func(p *player.Player) (effect, error) {
			if extra != nil {
				if err := extra(p); err != nil {
					return effect{}, err
				}
			}
			if err := p.GainWorkers(def.Workers); err != nil {
				return effect{}, err
			}
			if err := p.GainCoins(def.Coins); err != nil {
				return effect{}, err
			}
			if err := p.GainSpades(spades); err != nil {
				return effect{}, err
			}
			return effect{}, p.GainVP(def.VP)
		},
	}, nil
}
