package board

import (
	"testing"

	"github.com/stretchr/testify/require"

	"terra/hex"
)

func c(q, r int) hex.Coord {
	return hex.Coord{Q: q, R: r}
}

// row builds cells (0,0)..(n-1,0) of plains.
func row(n int) *Board {
	b := New()
	for q := 0; q < n; q++ {
		b.AddCell(c(q, 0), Plains, false)
	}
	return b
}

func TestCycleDistance(t *testing.T) {
	t.Run("takes the shorter arc", func(t *testing.T) {
		d, err := StandardCycle.Distance(StandardCycle[0], StandardCycle[4])
		require.NoError(t, err)
		require.Equal(t, 3, d, "0 -> 4 on a seven-cycle should wrap around")

		d, err = StandardCycle.Distance(Plains, Desert)
		require.NoError(t, err)
		require.Equal(t, 1, d)

		d, err = StandardCycle.Distance(Forest, Forest)
		require.NoError(t, err)
		require.Zero(t, d)
	})

	t.Run("short cycles", func(t *testing.T) {
		cycle := Cycle{Forest, Mountains, Desert}
		d, err := cycle.Distance(Forest, Desert)
		require.NoError(t, err)
		require.Equal(t, 1, d)

		_, err = cycle.Distance(Forest, Lakes)
		require.ErrorIs(t, err, ErrUnknownTerrain)
	})
}

func TestParse(t *testing.T) {
	terrain, err := ParseTerrain(" Wasteland")
	require.NoError(t, err)
	require.Equal(t, Wasteland, terrain)

	_, err = ParseTerrain("tundra")
	require.ErrorIs(t, err, ErrUnknownTerrain)

	kind, err := ParseStructureKind("trading_house")
	require.NoError(t, err)
	require.Equal(t, TradingHouse, kind)
	require.Equal(t, "stronghold", Stronghold.String())
}

func TestCells(t *testing.T) {
	t.Run("off-board coordinates fail", func(t *testing.T) {
		b := row(2)

		_, err := b.Terrain(c(5, 5))
		require.ErrorIs(t, err, ErrOffBoard)
		require.ErrorIs(t, b.SetTerrain(c(-1, 0), Swamp), ErrOffBoard)
		require.ErrorIs(t, b.PlaceStructure(c(0, 1), Dwelling, 0), ErrOffBoard)
	})

	t.Run("terrain can be changed", func(t *testing.T) {
		b := row(2)

		require.NoError(t, b.SetTerrain(c(1, 0), Swamp))

		got, err := b.Terrain(c(1, 0))
		require.NoError(t, err)
		require.Equal(t, Swamp, got)
	})

	t.Run("occupied cells reject a second structure", func(t *testing.T) {
		b := row(2)
		require.NoError(t, b.PlaceStructure(c(0, 0), Dwelling, 1))

		err := b.PlaceStructure(c(0, 0), Dwelling, 2)

		require.ErrorIs(t, err, ErrCellOccupied)
		s, ok, err := b.Structure(c(0, 0))
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, Structure{Kind: Dwelling, Owner: 1}, s)
	})

	t.Run("replacing keeps the owner", func(t *testing.T) {
		b := row(2)
		require.NoError(t, b.PlaceStructure(c(1, 0), Dwelling, 3))

		old, err := b.ReplaceStructure(c(1, 0), TradingHouse)

		require.NoError(t, err)
		require.Equal(t, Structure{Kind: Dwelling, Owner: 3}, old)
		s, _, _ := b.Structure(c(1, 0))
		require.Equal(t, Structure{Kind: TradingHouse, Owner: 3}, s)

		_, err = b.ReplaceStructure(c(0, 0), Temple)
		require.ErrorIs(t, err, ErrEmptyCell)
	})

	t.Run("lists cells in coordinate order", func(t *testing.T) {
		b := Uniform(1, Forest)
		require.Equal(t, []hex.Coord{c(-1, 0), c(-1, 1), c(0, -1), c(0, 0), c(0, 1), c(1, -1), c(1, 0)}, b.Cells())
	})

	t.Run("clones deeply", func(t *testing.T) {
		b := row(2)
		require.NoError(t, b.PlaceStructure(c(0, 0), Dwelling, 0))
		clone := b.Clone()

		_, err := b.ReplaceStructure(c(0, 0), Temple)
		require.NoError(t, err)
		require.NoError(t, b.SetTerrain(c(1, 0), Lakes))

		s, _, _ := clone.Structure(c(0, 0))
		require.Equal(t, Dwelling, s.Kind, "Clone should not see later changes")
		terrain, _ := clone.Terrain(c(1, 0))
		require.Equal(t, Plains, terrain)
	})
}

func TestNeighbors(t *testing.T) {
	t.Run("drops off-board neighbors", func(t *testing.T) {
		b := row(3)
		require.Equal(t, []hex.Coord{c(2, 0), c(0, 0)}, b.Neighbors(c(1, 0)))
		require.Len(t, Uniform(2, Plains).Neighbors(c(0, 0)), 6)
		require.Nil(t, b.Neighbors(c(9, 9)))
	})

	t.Run("rivers cut every link", func(t *testing.T) {
		b := row(3)
		b.AddCell(c(1, 0), Plains, true)

		require.Empty(t, b.Neighbors(c(0, 0)))
		require.Empty(t, b.Neighbors(c(1, 0)))
		require.True(t, b.Blocked(c(1, 0), c(2, 0)))
	})

	t.Run("blocked edges cut one link", func(t *testing.T) {
		b := row(3)
		require.NoError(t, b.BlockEdge(c(1, 0), c(0, 0)))

		require.Empty(t, b.Neighbors(c(0, 0)))
		require.Equal(t, []hex.Coord{c(2, 0)}, b.Neighbors(c(1, 0)))
		require.True(t, b.Blocked(c(0, 0), c(1, 0)), "Blocking should be symmetric")
		require.Equal(t, [][2]hex.Coord{{c(0, 0), c(1, 0)}}, b.BlockedEdges())

		require.ErrorIs(t, b.BlockEdge(c(0, 0), c(2, 0)), ErrNotAdjacent)
		require.ErrorIs(t, b.BlockEdge(c(0, 0), c(0, 1)), ErrOffBoard)
	})
}

func TestReachable(t *testing.T) {
	b := row(4)
	require.NoError(t, b.BlockEdge(c(0, 0), c(1, 0)))
	require.NoError(t, b.BlockEdge(c(1, 0), c(2, 0)))

	tests := []struct {
		name string
		rng  int
		want []hex.Coord
	}{
		{name: "no range keeps direct adjacency only", rng: 0, want: []hex.Coord{}},
		{name: "one crossing", rng: 1, want: []hex.Coord{c(1, 0)}},
		{name: "two crossings", rng: 2, want: []hex.Coord{c(1, 0), c(2, 0)}},
		{name: "range beyond the last blocked link", rng: 3, want: []hex.Coord{c(1, 0), c(2, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, b.Reachable(c(0, 0), tt.rng))
		})
	}

	t.Run("direct neighbors are always included", func(t *testing.T) {
		require.Equal(t, []hex.Coord{c(1, 0), c(3, 0)}, b.Reachable(c(2, 0), 1))
	})

	t.Run("reachable by a player's structures", func(t *testing.T) {
		require.NoError(t, b.PlaceStructure(c(0, 0), Dwelling, 0))

		require.False(t, b.IsReachableBy(c(2, 0), 0, 1))
		require.True(t, b.IsReachableBy(c(2, 0), 0, 2))
		require.False(t, b.IsReachableBy(c(1, 0), 1, 3), "Player without structures reaches nothing")
	})
}

func TestLargestConnectedArea(t *testing.T) {
	t.Run("ignores a disconnected structure", func(t *testing.T) {
		b := Uniform(5, Plains)
		for _, at := range []hex.Coord{c(0, 0), c(1, 0), c(2, 0), c(0, 5)} {
			require.NoError(t, b.PlaceStructure(at, Dwelling, 0))
		}
		require.NoError(t, b.PlaceStructure(c(1, 1), Dwelling, 1))

		require.Equal(t, 3, b.LargestConnectedArea(0, 0))
		require.Equal(t, []int{3, 1}, b.ConnectedAreas(0, 0))
		require.Equal(t, 1, b.LargestConnectedArea(1, 0))
		require.Zero(t, b.LargestConnectedArea(2, 0), "Player without structures has no area")
	})

	t.Run("shipping joins areas across a river", func(t *testing.T) {
		b := row(3)
		b.AddCell(c(1, 0), Lakes, true)
		require.NoError(t, b.PlaceStructure(c(0, 0), Dwelling, 0))
		require.NoError(t, b.PlaceStructure(c(2, 0), Dwelling, 0))

		require.Equal(t, 1, b.LargestConnectedArea(0, 0))
		require.Equal(t, 1, b.LargestConnectedArea(0, 1), "A river cell takes two crossings")
		require.Equal(t, 2, b.LargestConnectedArea(0, 2))
	})
}

func TestAdjacentOwners(t *testing.T) {
	b := Uniform(2, Plains)
	require.NoError(t, b.PlaceStructure(c(0, 0), Dwelling, 0))
	require.NoError(t, b.PlaceStructure(c(0, -1), Dwelling, 0))
	require.NoError(t, b.PlaceStructure(c(1, 0), TradingHouse, 2))
	require.NoError(t, b.PlaceStructure(c(0, 1), Dwelling, 1))
	require.NoError(t, b.PlaceStructure(c(-1, 1), Temple, 1))
	require.NoError(t, b.PlaceStructure(c(2, 0), Stronghold, 3))

	require.Equal(t, []int{1, 2}, b.AdjacentOwners(c(0, 0), 0))
	require.Equal(t, []int{0, 1, 2}, b.AdjacentOwners(c(0, 0), -1))
	require.True(t, b.IsAdjacentTo(c(0, 0), 2))
	require.False(t, b.IsAdjacentTo(c(0, 0), 3))

	value := func(k StructureKind) int {
		if k == Dwelling {
			return 1
		}
		return 2
	}
	require.Equal(t, 3, b.AdjacentPowerValue(c(0, 0), 1, value))
	require.Equal(t, 1, b.AdjacentPowerValue(c(0, 0), 0, value))
}

func TestDefault(t *testing.T) {
	b := Default(StandardCycle)

	require.Equal(t, 37, b.Len())
	rivers := 0
	for _, at := range b.Cells() {
		cell, err := b.Cell(at)
		require.NoError(t, err)
		require.True(t, StandardCycle.Contains(cell.Terrain))
		if cell.River {
			rivers++
		}
	}
	require.Equal(t, 6, rivers, "Rivers run along q+r == 0 away from the centre")
	river, _ := b.Cell(c(2, -2))
	require.True(t, river.River)

	centre, _ := b.Terrain(c(0, 0))
	require.Equal(t, Plains, centre)
	east, _ := b.Terrain(c(1, 0))
	require.Equal(t, Mountains, east)

	short := Default(Cycle{Forest, Mountains, Desert})
	for _, at := range short.Cells() {
		terrain, _ := short.Terrain(at)
		require.Contains(t, []Terrain{Forest, Mountains, Desert}, terrain)
	}
}
