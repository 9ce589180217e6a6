// Package rules holds the static reference tables of a game: structures,
// factions, special actions, cult thresholds and scoring. Tables are read
// from YAML; the standard ruleset is embedded.
package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"terra/board"
	"terra/cult"
	"terra/utils"
)

var ErrInvalidRules = errors.New("invalid rules")

//go:embed standard.yaml
var standardYAML []byte

// Cost is a price in resources. Spades are paid from the spade bank first and
// the rest in workers.
type Cost struct {
	Workers int `yaml:"workers" json:"workers"`
	Coins   int `yaml:"coins" json:"coins"`
	Power   int `yaml:"power" json:"power"`
	Spades  int `yaml:"spades" json:"spades"`
}

func (c Cost) Add(o Cost) Cost {
	return Cost{
		Workers: c.Workers + o.Workers,
		Coins:   c.Coins + o.Coins,
		Power:   c.Power + o.Power,
		Spades:  c.Spades + o.Spades,
	}
}

func (c Cost) IsZero() bool {
	return c == Cost{}
}

func (c Cost) negative() bool {
	return c.Workers < 0 || c.Coins < 0 || c.Power < 0 || c.Spades < 0
}

func (c Cost) String() string {
	return fmt.Sprintf("%dw/%dc/%dp/%ds", c.Workers, c.Coins, c.Power, c.Spades)
}

type Income struct {
	Workers int `yaml:"workers" json:"workers"`
	Coins   int `yaml:"coins" json:"coins"`
	Power   int `yaml:"power" json:"power"`
}

func (i Income) Add(o Income) Income {
	return Income{Workers: i.Workers + o.Workers, Coins: i.Coins + o.Coins, Power: i.Power + o.Power}
}

type Structure struct {
	Kind board.StructureKind `yaml:"kind"`
	// UpgradesFrom is nil for kinds that are built directly on empty land.
	UpgradesFrom *board.StructureKind `yaml:"upgrades_from"`
	Cost         Cost                 `yaml:"cost"`
	// NeighborCost replaces Cost when an opponent has a structure next to the upgraded one.
	NeighborCost *Cost  `yaml:"neighbor_cost"`
	PowerValue   int    `yaml:"power_value"`
	VP           int    `yaml:"vp"`
	Income       Income `yaml:"income"`
	CultSteps    int    `yaml:"cult_steps"`
	Supply       int    `yaml:"supply"`
}

type FactionData struct {
	Faction  Faction       `yaml:"faction"`
	Home     board.Terrain `yaml:"home"`
	Workers  int           `yaml:"workers"`
	Coins    int           `yaml:"coins"`
	Power    []int         `yaml:"power"`
	Shipping int           `yaml:"shipping"`
}

type Special struct {
	Kind    SpecialKind `yaml:"kind"`
	Cost    Cost        `yaml:"cost"`
	Workers int         `yaml:"workers"`
	Coins   int         `yaml:"coins"`
	Spades  int         `yaml:"spades"`
	VP      int         `yaml:"vp"`
	// Max caps the level an advance action can reach.
	Max int `yaml:"max"`
}

type TerrainTrack struct {
	Terrain board.Terrain `yaml:"terrain"`
	Track   cult.Track    `yaml:"track"`
}

type EndScoring struct {
	// AreaVP is paid per structure in each player's largest connected area.
	AreaVP int `yaml:"area_vp_per_structure"`
	// ResourceRate is how many leftover coins and workers buy one VP at game end.
	ResourceRate int `yaml:"resource_rate"`
}

type RoundBonus struct {
	Scoring Scoring `yaml:"scoring"`
	VP      int     `yaml:"vp"`
}

type Rules struct {
	Terrains      []board.Terrain `yaml:"terrains"`
	MaxRounds     int             `yaml:"max_rounds"`
	MinPlayers    int             `yaml:"min_players"`
	MaxPlayers    int             `yaml:"max_players"`
	PowerTokens   int             `yaml:"power_tokens"`
	StartVP       int             `yaml:"start_vp"`
	SpadeRate     int             `yaml:"spade_rate"`
	BaseIncome    Income          `yaml:"base_income"`
	Structures    []Structure     `yaml:"structures"`
	Factions      []FactionData   `yaml:"factions"`
	Specials      []Special       `yaml:"special_actions"`
	Cult          cult.Config     `yaml:"cult"`
	TerrainTracks []TerrainTrack  `yaml:"terrain_tracks"`
	Scoring       EndScoring      `yaml:"scoring"`
	RoundBonuses  []RoundBonus    `yaml:"round_bonuses"`
}

// Standard returns a fresh copy of the embedded standard ruleset.
func Standard() *Rules {
	r, err := Parse(standardYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded standard rules: %v", err))
	}
	return r
}

// Parse decodes and validates a YAML ruleset. Unknown fields are rejected.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("rules yaml: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func Load(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Cycle returns the terrain transformation cycle.
func (r *Rules) Cycle() board.Cycle {
	return board.Cycle(r.Terrains)
}

func (r *Rules) Structure(kind board.StructureKind) (Structure, bool) {
	for _, s := range r.Structures {
		if s.Kind == kind {
			return s, true
		}
	}
	return Structure{}, false
}

// PowerValue returns the power value of a structure kind, zero if unknown.
func (r *Rules) PowerValue(kind board.StructureKind) int {
	s, _ := r.Structure(kind)
	return s.PowerValue
}

func (r *Rules) Faction(f Faction) (FactionData, bool) {
	for _, fd := range r.Factions {
		if fd.Faction == f {
			return fd, true
		}
	}
	return FactionData{}, false
}

func (r *Rules) Special(kind SpecialKind) (Special, bool) {
	for _, s := range r.Specials {
		if s.Kind == kind {
			return s, true
		}
	}
	return Special{}, false
}

// TrackFor returns the cult track advanced by building on terrain t.
func (r *Rules) TrackFor(t board.Terrain) (cult.Track, bool) {
	for _, tt := range r.TerrainTracks {
		if tt.Terrain == t {
			return tt.Track, true
		}
	}
	return 0, false
}

// RoundBonus returns the bonus tile of a 1-based round.
func (r *Rules) RoundBonus(round int) (RoundBonus, bool) {
	if round < 1 || round > len(r.RoundBonuses) {
		return RoundBonus{}, false
	}
	return r.RoundBonuses[round-1], true
}

// Supply returns the starting supply of every structure kind.
func (r *Rules) Supply() map[board.StructureKind]int {
	out := make(map[board.StructureKind]int, len(r.Structures))
	for _, s := range r.Structures {
		out[s.Kind] = s.Supply
	}
	return out
}

// Validate reports every inconsistency in the tables, joined into one error.
func (r *Rules) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidRules}, args...)...))
	}

	if n := len(r.Terrains); n < 3 || n > 7 {
		fail("need 3 to 7 terrains, got %d", n)
	}
	for i, t := range r.Terrains {
		if utils.FindIndex(r.Terrains[:i], t) >= 0 {
			fail("terrain %v listed twice", t)
		}
	}
	if r.MaxRounds < 1 {
		fail("max_rounds must be positive, got %d", r.MaxRounds)
	}
	if r.MinPlayers < 1 || r.MinPlayers > r.MaxPlayers {
		fail("player bounds %d..%d", r.MinPlayers, r.MaxPlayers)
	}
	if r.PowerTokens < 1 {
		fail("power_tokens must be positive, got %d", r.PowerTokens)
	}
	if r.SpadeRate < 1 {
		fail("spade_rate must be positive, got %d", r.SpadeRate)
	}
	if r.Scoring.AreaVP < 0 {
		fail("area_vp_per_structure must not be negative, got %d", r.Scoring.AreaVP)
	}
	if r.Scoring.ResourceRate < 1 {
		fail("resource_rate must be positive, got %d", r.Scoring.ResourceRate)
	}

	direct := 0
	for i, s := range r.Structures {
		for _, prev := range r.Structures[:i] {
			if prev.Kind == s.Kind {
				fail("structure %v listed twice", s.Kind)
			}
		}
		if s.Cost.negative() || (s.NeighborCost != nil && s.NeighborCost.negative()) {
			fail("structure %v has a negative cost", s.Kind)
		}
		if s.Supply < 0 || s.VP < 0 || s.PowerValue < 0 || s.CultSteps < 0 {
			fail("structure %v has a negative value", s.Kind)
		}
		if s.UpgradesFrom == nil {
			direct++
			continue
		}
		if *s.UpgradesFrom == s.Kind {
			fail("structure %v upgrades from itself", s.Kind)
		}
		if _, ok := r.Structure(*s.UpgradesFrom); !ok {
			fail("structure %v upgrades from unknown %v", s.Kind, *s.UpgradesFrom)
		}
	}
	if direct == 0 {
		fail("no structure can be built directly")
	}

	for i, f := range r.Factions {
		for _, prev := range r.Factions[:i] {
			if prev.Faction == f.Faction {
				fail("faction %v listed twice", f.Faction)
			}
			if prev.Home == f.Home {
				fail("factions %v and %v share home %v", prev.Faction, f.Faction, f.Home)
			}
		}
		if !r.Cycle().Contains(f.Home) {
			fail("faction %v home %v is not a terrain", f.Faction, f.Home)
		}
		if f.Workers < 0 || f.Coins < 0 || f.Shipping < 0 {
			fail("faction %v has negative starting resources", f.Faction)
		}
		if len(f.Power) != 2 || f.Power[0] < 0 || f.Power[1] < 0 || f.Power[0]+f.Power[1] != r.PowerTokens {
			fail("faction %v power %v must be two bowls summing to %d", f.Faction, f.Power, r.PowerTokens)
		}
	}

	for i, s := range r.Specials {
		for _, prev := range r.Specials[:i] {
			if prev.Kind == s.Kind {
				fail("special action %v listed twice", s.Kind)
			}
		}
		if s.Cost.negative() || s.Workers < 0 || s.Coins < 0 || s.Spades < 0 || s.VP < 0 {
			fail("special action %v has a negative value", s.Kind)
		}
	}

	if r.Cult.MaxLevel < 1 {
		fail("cult max_level must be positive, got %d", r.Cult.MaxLevel)
	}
	for _, th := range r.Cult.Thresholds {
		if th.Level < 1 || th.Level > r.Cult.MaxLevel || th.Power < 0 {
			fail("cult threshold %+v out of range", th)
		}
	}
	for _, t := range r.Terrains {
		if _, ok := r.TrackFor(t); !ok {
			fail("terrain %v has no cult track", t)
		}
	}

	return errors.Join(errs...)
}
