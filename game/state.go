package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog/log"

	"terra/board"
	"terra/cult"
	"terra/player"
	"terra/rules"
)

type Phase int

const (
	SetupPhase Phase = iota
	IncomePhase
	ActionPhase
	RoundEndPhase
	CleanupPhase
	EndedPhase
)

var phaseNames = [...]string{"setup", "income", "action", "round_end", "cleanup", "ended"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Game is one game in progress. It is not safe for concurrent use; callers
// serving several goroutines must guard each Game with its own lock.
type Game struct {
	rules     *rules.Rules
	board     *board.Board
	cults     *cult.Board
	players   []*player.Player
	order     *TurnOrder
	phase     Phase
	round     int
	maxRounds int
	offers    []PowerOffer
	nextOffer int
	tally     []map[rules.Scoring]int // per player, reset every round
	standings []Standing
}

// New seats one player per faction, in the given order, and leaves the game in
// the setup phase. Call Start to begin the first round.
func New(factions []rules.Faction, options ...Option) (*Game, error) {
	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.rules == nil {
		cfg.rules = rules.Standard()
	}
	r := cfg.rules
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if n := len(factions); n < r.MinPlayers || n > r.MaxPlayers {
		return nil, fmt.Errorf("%d players, need %d to %d: %w", n, r.MinPlayers, r.MaxPlayers, ErrIllegalState)
	}

	g := &Game{
		rules:     r,
		board:     cfg.board,
		cults:     cult.New(r.Cult, len(factions)),
		phase:     SetupPhase,
		maxRounds: r.MaxRounds,
	}
	if cfg.maxRounds > 0 {
		g.maxRounds = cfg.maxRounds
	}
	if g.board == nil {
		g.board = board.Default(r.Cycle())
	}

	seats := make([]int, len(factions))
	for i, f := range factions {
		for _, other := range factions[:i] {
			if other == f {
				return nil, fmt.Errorf("faction %v chosen twice: %w", f, ErrIllegalState)
			}
		}
		name := ""
		if i < len(cfg.names) {
			name = cfg.names[i]
		}
		p, err := player.New(i, name, f, r)
		if err != nil {
			return nil, wrap(ErrIllegalState, err)
		}
		g.players = append(g.players, p)
		g.tally = append(g.tally, map[rules.Scoring]int{})
		seats[i] = i
	}
	g.order = NewTurnOrder(seats)
	return g, nil
}

// Start runs the first income phase and opens the first action phase.
func (g *Game) Start() error {
	if g.phase != SetupPhase {
		return wrap(ErrIllegalState, fmt.Errorf("start in %v: %w", g.phase, ErrWrongPhase))
	}
	g.round = 1
	log.Info().Int("players", len(g.players)).Int("rounds", g.maxRounds).Msg("game started")
	return g.beginRound(g.order.NextRound())
}

func (g *Game) Phase() Phase        { return g.phase }
func (g *Game) Round() int          { return g.round }
func (g *Game) MaxRounds() int      { return g.maxRounds }
func (g *Game) Rules() *rules.Rules { return g.rules }
func (g *Game) NumPlayers() int     { return len(g.players) }

// CurrentPlayer returns the player to act, or false outside the action phase.
func (g *Game) CurrentPlayer() (int, bool) {
	if g.phase != ActionPhase {
		return 0, false
	}
	return g.order.Current()
}

// Player returns a copy of a player's state.
func (g *Game) Player(id int) (*player.Player, error) {
	p, err := g.player(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Board returns a copy of the board.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

func (g *Game) player(id int) (*player.Player, error) {
	if id < 0 || id >= len(g.players) {
		return nil, wrap(ErrIllegalState, fmt.Errorf("player %d: %w", id, ErrUnknownPlayer))
	}
	return g.players[id], nil
}

// Check verifies the resource invariants of every player.
func (g *Game) Check() error {
	for _, p := range g.players {
		if err := p.Check(); err != nil {
			return wrap(ErrInvariantViolation, err)
		}
	}
	return nil
}

type StateHash uint64

// Hash digests every piece of mutable game state.
func (g *Game) Hash() StateHash {
	hasher := fnv.New64a()
	put := func(values ...int) {
		for _, v := range values {
			binary.Write(hasher, binary.LittleEndian, int64(v))
		}
	}
	flag := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	put(int(g.phase), g.round, g.maxRounds, g.order.current, g.nextOffer)
	put(len(g.order.active))
	put(g.order.active...)
	put(len(g.order.passed))
	put(g.order.passed...)

	for i, p := range g.players {
		bowls := p.Power().State()
		put(p.ID(), int(p.Faction()), p.Workers(), p.Coins(), p.Spades(), p.VP())
		put(bowls.I, bowls.II, bowls.III, p.Power().Total())
		put(p.Shipping(), p.Terraforming(), flag(p.Passed()))
		for _, c := range p.Structures() {
			kind, _ := p.StructureAt(c)
			put(c.Q, c.R, int(kind))
		}
		for _, k := range board.StructureKinds {
			put(p.Supply(k))
		}
		put(g.cults.Levels(i)...)
		for s := rules.ScoreDwelling; s <= rules.ScoreCult; s++ {
			put(g.tally[i][s])
		}
	}

	for _, c := range g.board.Cells() {
		cell, _ := g.board.Cell(c)
		put(c.Q, c.R, int(cell.Terrain), flag(cell.River))
		if cell.Structure != nil {
			put(int(cell.Structure.Kind), cell.Structure.Owner)
		} else {
			put(-1)
		}
	}
	for _, e := range g.board.BlockedEdges() {
		put(e[0].Q, e[0].R, e[1].Q, e[1].R)
	}

	for _, o := range g.offers {
		put(o.ID, o.Player, o.From, o.At.Q, o.At.R, o.Power, o.VPCost)
	}
	return StateHash(hasher.Sum64())
}
