// Package cult tracks player progress on the four shared cult tracks.
// Players never displace each other; several may share a level.
package cult

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"terra/utils"
)

var (
	ErrUnknownTrack  = errors.New("unknown cult track")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrNegativeSteps = errors.New("steps must not be negative")
)

type Track int

const (
	Fire Track = iota
	Water
	Earth
	Air
)

var Tracks = []Track{Fire, Water, Earth, Air}

var trackNames = [...]string{"fire", "water", "earth", "air"}

func (t Track) String() string {
	if t < 0 || int(t) >= len(trackNames) {
		return fmt.Sprintf("track(%d)", int(t))
	}
	return trackNames[t]
}

func ParseTrack(name string) (Track, error) {
	i := utils.FindIndex(trackNames[:], strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownTrack)
	}
	return Track(i), nil
}

func (t Track) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Track) UnmarshalText(text []byte) error {
	parsed, err := ParseTrack(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Track) UnmarshalYAML(node *yaml.Node) error {
	return t.UnmarshalText([]byte(node.Value))
}

// Threshold pays Power once to a player whose level reaches Level.
type Threshold struct {
	Level int `yaml:"level"`
	Power int `yaml:"power"`
}

type Config struct {
	MaxLevel   int         `yaml:"max_level"`
	Thresholds []Threshold `yaml:"thresholds"`
	RankVP     []int       `yaml:"rank_vp"`
}

// Board holds every player's level on every track.
type Board struct {
	cfg    Config
	levels [][]int // [track][player]
}

func New(cfg Config, players int) *Board {
	levels := make([][]int, len(Tracks))
	for i := range levels {
		levels[i] = make([]int, players)
	}
	return &Board{cfg: cfg, levels: levels}
}

func (b *Board) check(t Track, player int) error {
	if t < 0 || int(t) >= len(b.levels) {
		return fmt.Errorf("%v: %w", t, ErrUnknownTrack)
	}
	if player < 0 || player >= len(b.levels[t]) {
		return fmt.Errorf("player %d: %w", player, ErrUnknownPlayer)
	}
	return nil
}

func (b *Board) Level(t Track, player int) int {
	if b.check(t, player) != nil {
		return 0
	}
	return b.levels[t][player]
}

// Levels returns a player's level on each track, indexed by Track.
func (b *Board) Levels(player int) []int {
	out := make([]int, len(Tracks))
	for _, t := range Tracks {
		out[t] = b.Level(t, player)
	}
	return out
}

// Advance moves player up to steps levels on t, stopping at the top of the
// track. It returns the levels actually moved and the Power earned from
// thresholds crossed on the way.
func (b *Board) Advance(t Track, player, steps int) (moved, power int, err error) {
	if err := b.check(t, player); err != nil {
		return 0, 0, err
	}
	if steps < 0 {
		return 0, 0, fmt.Errorf("advance %d on %v: %w", steps, t, ErrNegativeSteps)
	}
	from := b.levels[t][player]
	to := utils.Clamp(from+steps, 0, b.cfg.MaxLevel)
	if to <= from {
		return 0, 0, nil
	}
	b.levels[t][player] = to
	return to - from, b.PowerBetween(from, to), nil
}

// PowerBetween sums threshold rewards for levels in (from, to].
func (b *Board) PowerBetween(from, to int) int {
	total := 0
	for _, th := range b.cfg.Thresholds {
		if th.Level > from && th.Level <= to {
			total += th.Power
		}
	}
	return total
}

// Rankings groups players with a level above zero on t, highest level first.
// Players sharing a level share a group, in seat order.
func (b *Board) Rankings(t Track) [][]int {
	if t < 0 || int(t) >= len(b.levels) {
		return nil
	}
	return groups(b.levels[t])
}

// EndGameBonus returns each player's rank VP summed over all tracks.
func (b *Board) EndGameBonus() []int {
	players := 0
	if len(b.levels) > 0 {
		players = len(b.levels[0])
	}
	total := make([]int, players)
	for _, t := range Tracks {
		for p, vp := range SplitRanks(b.levels[t], b.cfg.RankVP) {
			total[p] += vp
		}
	}
	return total
}

func (b *Board) Clone() *Board {
	levels := make([][]int, len(b.levels))
	for i, row := range b.levels {
		levels[i] = slices.Clone(row)
	}
	return &Board{cfg: b.cfg, levels: levels}
}

// SplitRanks awards VP by rank on values indexed by player. Only positive values
// rank. Players tied on a value cover consecutive ranks and split the sum of
// those ranks' awards evenly, rounding down.
func SplitRanks(values []int, awards []int) []int {
	out := make([]int, len(values))
	rank := 0
	for _, group := range groups(values) {
		sum := 0
		for i := rank; i < rank+len(group) && i < len(awards); i++ {
			sum += awards[i]
		}
		for _, p := range group {
			out[p] = sum / len(group)
		}
		rank += len(group)
	}
	return out
}

func groups(values []int) [][]int {
	order := []int{}
	for p, v := range values {
		if v > 0 {
			order = append(order, p)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int { return values[b] - values[a] })

	var out [][]int
	for i, p := range order {
		if i > 0 && values[order[i-1]] == values[p] {
			out[len(out)-1] = append(out[len(out)-1], p)
			continue
		}
		out = append(out, []int{p})
	}
	return out
}
