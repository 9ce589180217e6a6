package board

import (
	"terra/hex"
	"terra/utils"
)

// DefaultRadius is the radius of the default hexagonal board (37 cells).
const DefaultRadius = 3

// Default builds the fixed radius-3 board. Terrain follows a deterministic
// pattern over cycle; cells with (q+r) divisible by 5 away from the centre are rivers.
func Default(cycle Cycle) *Board {
	b := New()
	for _, c := range hex.Hexagon(DefaultRadius) {
		b.AddCell(c, defaultTerrain(c, cycle), isRiver(c))
	}
	return b
}

// Uniform builds a hexagon of the given radius covered by a single terrain, with no rivers.
func Uniform(radius int, t Terrain) *Board {
	b := New()
	for _, c := range hex.Hexagon(radius) {
		b.AddCell(c, t, false)
	}
	return b
}

func defaultTerrain(c hex.Coord, cycle Cycle) Terrain {
	if len(cycle) == 0 {
		return Plains
	}
	i := (utils.Abs(3*c.Q+2*c.R) + utils.Abs(c.Q-c.R)) % len(cycle)
	return cycle[i]
}

func isRiver(c hex.Coord) bool {
	return (c.Q+c.R)%5 == 0 && utils.Abs(c.Q)+utils.Abs(c.R) > 1
}
