// Package hex implements axial hex-grid coordinates.
// The third cube coordinate s is derived: s = -q - r.
package hex

import (
	"fmt"

	"terra/utils"
)

// Coord is a position on the hex grid in axial coordinates.
type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Direction indexes Directions.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// Directions are the six neighbor offsets, in Direction order.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// Neighbor returns the adjacent coordinate in direction d. Directions wrap
// around, so d+6 and d-6 name the same neighbor as d.
func (c Coord) Neighbor(d Direction) Coord {
	return c.Add(Directions[(int(d)%6+6)%6])
}

// Neighbors returns the six adjacent coordinates, whether or not they are on any board.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range Directions {
		result[i] = c.Add(dir)
	}
	return result
}

// IsNeighbor reports whether o is one step away from c.
func (c Coord) IsNeighbor(o Coord) bool {
	return Distance(c, o) == 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Distance returns the number of steps between a and b.
func Distance(a, b Coord) int {
	return max(utils.Abs(a.Q-b.Q), utils.Abs(a.R-b.R), utils.Abs(a.S()-b.S()))
}

// Compare orders coordinates by q, then r.
func Compare(a, b Coord) int {
	if a.Q != b.Q {
		return a.Q - b.Q
	}
	return a.R - b.R
}

// Hexagon returns every coordinate within radius of the origin, ordered by q then r.
// A hexagon of radius R holds 3R(R+1)+1 cells.
func Hexagon(radius int) []Coord {
	if radius < 0 {
		return nil
	}
	coords := make([]Coord, 0, 3*radius*(radius+1)+1)
	for q := -radius; q <= radius; q++ {
		for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
			coords = append(coords, Coord{Q: q, R: r})
		}
	}
	return coords
}

// Ring returns the coordinates exactly radius steps from center.
func Ring(center Coord, radius int) []Coord {
	if radius <= 0 {
		return []Coord{center}
	}
	ring := make([]Coord, 0, 6*radius)
	c := center
	for i := 0; i < radius; i++ {
		c = c.Neighbor(SouthWest)
	}
	for d := East; d <= SouthEast; d++ {
		for i := 0; i < radius; i++ {
			ring = append(ring, c)
			c = c.Neighbor(d)
		}
	}
	return ring
}
