package board

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"terra/utils"
)

var ErrUnknownStructure = errors.New("unknown structure kind")

type StructureKind int

const (
	Dwelling StructureKind = iota
	TradingHouse
	Temple
	Sanctuary
	Stronghold
)

// StructureKinds lists every kind in tier order.
var StructureKinds = []StructureKind{Dwelling, TradingHouse, Temple, Sanctuary, Stronghold}

var structureNames = [...]string{"dwelling", "trading_house", "temple", "sanctuary", "stronghold"}

func (k StructureKind) String() string {
	if k < 0 || int(k) >= len(structureNames) {
		return fmt.Sprintf("structure(%d)", int(k))
	}
	return structureNames[k]
}

func ParseStructureKind(name string) (StructureKind, error) {
	i := utils.FindIndex(structureNames[:], strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownStructure)
	}
	return StructureKind(i), nil
}

func (k StructureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *StructureKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStructureKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k *StructureKind) UnmarshalYAML(node *yaml.Node) error {
	return k.UnmarshalText([]byte(node.Value))
}

// Structure is a building on the board. Owner is the owning player's seat.
type Structure struct {
	Kind  StructureKind `json:"kind"`
	Owner int           `json:"owner"`
}

// Cell is one hex of the board. River cells have no direct adjacency to any neighbor.
type Cell struct {
	Terrain   Terrain    `json:"terrain"`
	River     bool       `json:"river,omitempty"`
	Structure *Structure `json:"structure,omitempty"`
}

func (c Cell) Occupied() bool {
	return c.Structure != nil
}

func (c Cell) clone() *Cell {
	out := c
	if c.Structure != nil {
		s := *c.Structure
		out.Structure = &s
	}
	return &out
}
