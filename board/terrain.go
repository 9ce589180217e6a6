package board

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"terra/utils"
)

var ErrUnknownTerrain = errors.New("unknown terrain")

type Terrain int

const (
	Plains Terrain = iota
	Swamp
	Lakes
	Forest
	Mountains
	Wasteland
	Desert
)

var terrainNames = [...]string{"plains", "swamp", "lakes", "forest", "mountains", "wasteland", "desert"}

func (t Terrain) String() string {
	if t < 0 || int(t) >= len(terrainNames) {
		return fmt.Sprintf("terrain(%d)", int(t))
	}
	return terrainNames[t]
}

// ParseTerrain looks a terrain up by its lower-case name.
func ParseTerrain(name string) (Terrain, error) {
	i := utils.FindIndex(terrainNames[:], strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownTerrain)
	}
	return Terrain(i), nil
}

func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Terrain) UnmarshalText(text []byte) error {
	parsed, err := ParseTerrain(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Terrain) UnmarshalYAML(node *yaml.Node) error {
	return t.UnmarshalText([]byte(node.Value))
}

// Cycle is the cyclic order of terrains used to price transformations.
type Cycle []Terrain

// StandardCycle is the seven-terrain transformation cycle.
var StandardCycle = Cycle{Plains, Swamp, Lakes, Forest, Mountains, Wasteland, Desert}

func (c Cycle) Contains(t Terrain) bool {
	return utils.FindIndex(c, t) >= 0
}

// Distance returns the number of steps along the shorter arc between a and b.
func (c Cycle) Distance(a, b Terrain) (int, error) {
	i, j := utils.FindIndex(c, a), utils.FindIndex(c, b)
	if i < 0 {
		return 0, fmt.Errorf("%v not in cycle: %w", a, ErrUnknownTerrain)
	}
	if j < 0 {
		return 0, fmt.Errorf("%v not in cycle: %w", b, ErrUnknownTerrain)
	}
	d := utils.Abs(i - j)
	return min(d, len(c)-d), nil
}
