package player

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"terra/board"
	"terra/hex"
	"terra/power"
	"terra/rules"
)

var (
	ErrInsufficientWorkers = errors.New("insufficient workers")
	ErrInsufficientCoins   = errors.New("insufficient coins")
	ErrInsufficientSpades  = errors.New("insufficient spades")
	ErrSupplyExhausted     = errors.New("no structure of that kind left in supply")
	ErrMaxLevel            = errors.New("already at maximum level")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrUnknownFaction      = errors.New("faction not in rules")
)

// Player is one seat's resources, pieces and progress. Structures on the board
// are referenced by coordinate; the board owns the cells.
type Player struct {
	id           int
	name         string
	faction      rules.Faction
	home         board.Terrain
	workers      int
	coins        int
	spades       int
	power        power.Bowls
	vp           int
	structures   map[hex.Coord]board.StructureKind
	supply       map[board.StructureKind]int
	shipping     int
	terraforming int
	passed       bool
	spadeRate    int
}

// New seats a player of the given faction using its starting values from r.
func New(id int, name string, faction rules.Faction, r *rules.Rules) (*Player, error) {
	data, ok := r.Faction(faction)
	if !ok {
		return nil, fmt.Errorf("%v: %w", faction, ErrUnknownFaction)
	}
	if len(data.Power) != 2 {
		return nil, fmt.Errorf("%v starting power %v: %w", faction, data.Power, power.ErrInvariant)
	}
	bowls, err := power.New(data.Power[0], data.Power[1], 0)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = fmt.Sprintf("Player%d", id)
	}
	return &Player{
		id:         id,
		name:       name,
		faction:    faction,
		home:       data.Home,
		workers:    data.Workers,
		coins:      data.Coins,
		power:      bowls,
		vp:         r.StartVP,
		structures: make(map[hex.Coord]board.StructureKind),
		supply:     r.Supply(),
		shipping:   data.Shipping,
		spadeRate:  r.SpadeRate,
	}, nil
}

func (p *Player) ID() int                          { return p.id }
func (p *Player) Name() string                     { return p.name }
func (p *Player) Faction() rules.Faction           { return p.faction }
func (p *Player) Ability() rules.Ability           { return p.faction.Ability() }
func (p *Player) Home() board.Terrain              { return p.home }
func (p *Player) Workers() int                     { return p.workers }
func (p *Player) Coins() int                       { return p.coins }
func (p *Player) Spades() int                      { return p.spades }
func (p *Player) Power() power.Bowls               { return p.power }
func (p *Player) VP() int                          { return p.vp }
func (p *Player) Shipping() int                    { return p.shipping }
func (p *Player) Terraforming() int                { return p.terraforming }
func (p *Player) Passed() bool                     { return p.passed }
func (p *Player) HasStructures() bool              { return len(p.structures) > 0 }
func (p *Player) Supply(k board.StructureKind) int { return p.supply[k] }

// Structures returns the player's structure positions ordered by q then r.
func (p *Player) Structures() []hex.Coord {
	coords := make([]hex.Coord, 0, len(p.structures))
	for c := range p.structures {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, hex.Compare)
	return coords
}

// StructureAt returns the kind of the player's structure at c.
func (p *Player) StructureAt(c hex.Coord) (board.StructureKind, bool) {
	k, ok := p.structures[c]
	return k, ok
}

// Count returns how many structures of kind k the player has on the board.
func (p *Player) Count(k board.StructureKind) int {
	n := 0
	for _, kind := range p.structures {
		if kind == k {
			n++
		}
	}
	return n
}

// SpadeWorkerRate is the number of workers one spade costs.
func (p *Player) SpadeWorkerRate() int {
	return max(1, p.spadeRate-p.terraforming)
}

// WorkersFor returns the workers cost would consume, after banked spades are used.
func (p *Player) WorkersFor(cost rules.Cost) int {
	return cost.Workers + max(0, cost.Spades-p.spades)*p.SpadeWorkerRate()
}

// CanAfford returns nil if the player can pay cost, or an error naming the first short resource.
func (p *Player) CanAfford(cost rules.Cost) error {
	if cost.Workers > p.workers {
		return fmt.Errorf("need %d workers, have %d: %w", cost.Workers, p.workers, ErrInsufficientWorkers)
	}
	if need := p.WorkersFor(cost); need > p.workers {
		return fmt.Errorf("need %d spades, have %d banked and %d workers at %d per spade: %w",
			cost.Spades, p.spades, p.workers-cost.Workers, p.SpadeWorkerRate(), ErrInsufficientSpades)
	}
	if cost.Coins > p.coins {
		return fmt.Errorf("need %d coins, have %d: %w", cost.Coins, p.coins, ErrInsufficientCoins)
	}
	if cost.Power > p.power.Available() {
		return fmt.Errorf("need %d power, have %d: %w", cost.Power, p.power.Available(), power.ErrInsufficientPower)
	}
	return nil
}

// Pay deducts cost. Nothing changes if the player cannot afford it.
func (p *Player) Pay(cost rules.Cost) error {
	if err := p.CanAfford(cost); err != nil {
		return err
	}
	if err := p.power.Spend(cost.Power); err != nil {
		return err
	}
	fromBank := min(p.spades, cost.Spades)
	p.workers -= p.WorkersFor(cost)
	p.spades -= fromBank
	p.coins -= cost.Coins
	return nil
}

func (p *Player) GainWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("workers %d: %w", n, ErrNegativeAmount)
	}
	p.workers += n
	return nil
}

func (p *Player) GainCoins(n int) error {
	if n < 0 {
		return fmt.Errorf("coins %d: %w", n, ErrNegativeAmount)
	}
	p.coins += n
	return nil
}

func (p *Player) GainSpades(n int) error {
	if n < 0 {
		return fmt.Errorf("spades %d: %w", n, ErrNegativeAmount)
	}
	p.spades += n
	return nil
}

func (p *Player) GainPower(n int) error {
	return p.power.Gain(n)
}

func (p *Player) GainVP(n int) error {
	if n < 0 {
		return fmt.Errorf("vp %d: %w", n, ErrNegativeAmount)
	}
	p.vp += n
	return nil
}

// LoseVP subtracts n victory points, never going below zero.
func (p *Player) LoseVP(n int) {
	p.vp = max(0, p.vp-n)
}

func (p *Player) Sacrifice(n int) error {
	return p.power.Sacrifice(n)
}

// Collect adds one round of income.
func (p *Player) Collect(income rules.Income) error {
	if income.Workers < 0 || income.Coins < 0 || income.Power < 0 {
		return fmt.Errorf("income %+v: %w", income, ErrNegativeAmount)
	}
	p.workers += income.Workers
	p.coins += income.Coins
	return p.power.Gain(income.Power)
}

// ConvertLeftovers turns coins and workers into victory points at rate per VP
// and returns the VP gained. Remainders are kept.
func (p *Player) ConvertLeftovers(rate int) int {
	if rate < 1 {
		return 0
	}
	vp := (p.coins + p.workers) / rate
	spent := vp * rate
	fromCoins := min(spent, p.coins)
	p.coins -= fromCoins
	p.workers -= spent - fromCoins
	p.vp += vp
	return vp
}

func (p *Player) TakeSupply(k board.StructureKind) error {
	if p.supply[k] <= 0 {
		return fmt.Errorf("%v: %w", k, ErrSupplyExhausted)
	}
	p.supply[k]--
	return nil
}

func (p *Player) ReturnSupply(k board.StructureKind) {
	p.supply[k]++
}

func (p *Player) AddStructure(c hex.Coord, k board.StructureKind) {
	p.structures[c] = k
}

// ReplaceStructure changes the kind at c and returns the previous kind.
func (p *Player) ReplaceStructure(c hex.Coord, k board.StructureKind) (board.StructureKind, bool) {
	old, ok := p.structures[c]
	if !ok {
		return 0, false
	}
	p.structures[c] = k
	return old, true
}

func (p *Player) AdvanceShipping(limit int) error {
	if p.shipping >= limit {
		return fmt.Errorf("shipping %d of %d: %w", p.shipping, limit, ErrMaxLevel)
	}
	p.shipping++
	return nil
}

func (p *Player) AdvanceTerraforming(limit int) error {
	if p.terraforming >= limit {
		return fmt.Errorf("terraforming %d of %d: %w", p.terraforming, limit, ErrMaxLevel)
	}
	p.terraforming++
	return nil
}

func (p *Player) MarkPassed() {
	p.passed = true
}

// ResetRound clears the passed flag and discards unused spades.
func (p *Player) ResetRound() {
	p.passed = false
	p.spades = 0
}

// Check verifies the player's resource invariants.
func (p *Player) Check() error {
	if p.workers < 0 || p.coins < 0 || p.spades < 0 || p.vp < 0 {
		return fmt.Errorf("player %d has negative resources: %w", p.id, power.ErrInvariant)
	}
	for k, n := range p.supply {
		if n < 0 {
			return fmt.Errorf("player %d supply of %v is %d: %w", p.id, k, n, power.ErrInvariant)
		}
	}
	return p.power.Check()
}

func (p *Player) Clone() *Player {
	out := *p
	out.structures = make(map[hex.Coord]board.StructureKind, len(p.structures))
	for c, k := range p.structures {
		out.structures[c] = k
	}
	out.supply = make(map[board.StructureKind]int, len(p.supply))
	for k, n := range p.supply {
		out.supply[k] = n
	}
	return &out
}
