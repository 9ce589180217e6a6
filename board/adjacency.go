package board

import (
	"golang.org/x/exp/slices"

	"terra/hex"
)

// Neighbors returns the on-board neighbors of c that are not cut off by a blocked link.
func (b *Board) Neighbors(c hex.Coord) []hex.Coord {
	if !b.Has(c) {
		return nil
	}
	out := make([]hex.Coord, 0, 6)
	for _, n := range c.Neighbors() {
		if b.Has(n) && !b.Blocked(c, n) {
			out = append(out, n)
		}
	}
	return out
}

// Reachable returns the cells reachable from c: its direct neighbors plus, when
// rng > 0, cells reached by crossing up to rng blocked links. Each level of the
// search only follows blocked links. The result excludes c and is ordered by q then r.
func (b *Board) Reachable(c hex.Coord, rng int) []hex.Coord {
	if !b.Has(c) {
		return nil
	}
	seen := map[hex.Coord]struct{}{c: {}}
	for _, n := range b.Neighbors(c) {
		seen[n] = struct{}{}
	}

	frontier := []hex.Coord{c}
	for crossed := 0; crossed < rng && len(frontier) > 0; crossed++ {
		var next []hex.Coord
		for _, from := range frontier {
			for _, n := range from.Neighbors() {
				if _, ok := seen[n]; ok || !b.Has(n) || !b.Blocked(from, n) {
					continue
				}
				seen[n] = struct{}{}
				next = append(next, n)
			}
		}
		frontier = next
	}

	delete(seen, c)
	out := make([]hex.Coord, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.SortFunc(out, hex.Compare)
	return out
}

// IsReachableBy reports whether c is reachable from any of owner's structures
// within rng blocked-link crossings.
func (b *Board) IsReachableBy(c hex.Coord, owner, rng int) bool {
	for _, s := range b.StructuresOf(owner) {
		if slices.Contains(b.Reachable(s, rng), c) {
			return true
		}
	}
	return false
}

// IsAdjacentTo reports whether c directly neighbors any of owner's structures.
func (b *Board) IsAdjacentTo(c hex.Coord, owner int) bool {
	for _, n := range b.Neighbors(c) {
		if s := b.cells[n].Structure; s != nil && s.Owner == owner {
			return true
		}
	}
	return false
}

// AdjacentOwners returns the distinct players other than exclude that own a
// structure directly neighboring c, in ascending order.
func (b *Board) AdjacentOwners(c hex.Coord, exclude int) []int {
	owners := []int{}
	for _, n := range b.Neighbors(c) {
		s := b.cells[n].Structure
		if s == nil || s.Owner == exclude || slices.Contains(owners, s.Owner) {
			continue
		}
		owners = append(owners, s.Owner)
	}
	slices.Sort(owners)
	return owners
}

// AdjacentPowerValue sums value over owner's structures directly neighboring c.
func (b *Board) AdjacentPowerValue(c hex.Coord, owner int, value func(StructureKind) int) int {
	total := 0
	for _, n := range b.Neighbors(c) {
		if s := b.cells[n].Structure; s != nil && s.Owner == owner {
			total += value(s.Kind)
		}
	}
	return total
}

// LargestConnectedArea returns the size of the largest group of owner's
// structures that are pairwise linked through Reachable with range rng.
func (b *Board) LargestConnectedArea(owner, rng int) int {
	return slices.Max(append(b.ConnectedAreas(owner, rng), 0))
}

// ConnectedAreas returns the size of each of owner's connected groups, largest first.
func (b *Board) ConnectedAreas(owner, rng int) []int {
	structures := b.StructuresOf(owner)
	uf := newUnionFind(structures)
	for _, s := range structures {
		for _, n := range b.Reachable(s, rng) {
			if other := b.cells[n].Structure; other != nil && other.Owner == owner {
				uf.union(s, n)
			}
		}
	}
	sizes := uf.componentSizes()
	slices.SortFunc(sizes, func(x, y int) int { return y - x })
	return sizes
}
