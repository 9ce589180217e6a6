// Package board holds the sparse hex map: terrain, structures, blocked links
// and the adjacency and connectivity queries built on top of them.
package board

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"terra/hex"
)

var (
	ErrOffBoard     = errors.New("coordinate is off the board")
	ErrCellOccupied = errors.New("cell already has a structure")
	ErrEmptyCell    = errors.New("cell has no structure")
	ErrNotAdjacent  = errors.New("cells are not neighbors")
)

type edge struct {
	a, b hex.Coord
}

func newEdge(a, b hex.Coord) edge {
	if hex.Compare(a, b) > 0 {
		a, b = b, a
	}
	return edge{a: a, b: b}
}

// Board maps coordinates to cells. A coordinate without a cell is off the board.
type Board struct {
	cells   map[hex.Coord]*Cell
	blocked map[edge]struct{}
}

func New() *Board {
	return &Board{
		cells:   make(map[hex.Coord]*Cell),
		blocked: make(map[edge]struct{}),
	}
}

// AddCell creates or overwrites the cell at c. Any structure on it is removed.
func (b *Board) AddCell(c hex.Coord, terrain Terrain, river bool) {
	b.cells[c] = &Cell{Terrain: terrain, River: river}
}

func (b *Board) Has(c hex.Coord) bool {
	_, ok := b.cells[c]
	return ok
}

func (b *Board) Len() int {
	return len(b.cells)
}

func (b *Board) cell(c hex.Coord) (*Cell, error) {
	cell, ok := b.cells[c]
	if !ok {
		return nil, fmt.Errorf("%v: %w", c, ErrOffBoard)
	}
	return cell, nil
}

// Cell returns a copy of the cell at c.
func (b *Board) Cell(c hex.Coord) (Cell, error) {
	cell, err := b.cell(c)
	if err != nil {
		return Cell{}, err
	}
	return *cell.clone(), nil
}

func (b *Board) Terrain(c hex.Coord) (Terrain, error) {
	cell, err := b.cell(c)
	if err != nil {
		return 0, err
	}
	return cell.Terrain, nil
}

func (b *Board) SetTerrain(c hex.Coord, t Terrain) error {
	cell, err := b.cell(c)
	if err != nil {
		return err
	}
	cell.Terrain = t
	return nil
}

// Structure returns the structure at c and whether there is one.
func (b *Board) Structure(c hex.Coord) (Structure, bool, error) {
	cell, err := b.cell(c)
	if err != nil {
		return Structure{}, false, err
	}
	if cell.Structure == nil {
		return Structure{}, false, nil
	}
	return *cell.Structure, true, nil
}

func (b *Board) PlaceStructure(c hex.Coord, kind StructureKind, owner int) error {
	cell, err := b.cell(c)
	if err != nil {
		return err
	}
	if cell.Structure != nil {
		return fmt.Errorf("%v holds a %v of player %d: %w", c, cell.Structure.Kind, cell.Structure.Owner, ErrCellOccupied)
	}
	cell.Structure = &Structure{Kind: kind, Owner: owner}
	return nil
}

// ReplaceStructure swaps the kind of the structure at c, keeping its owner, and
// returns the structure that was there before.
func (b *Board) ReplaceStructure(c hex.Coord, kind StructureKind) (Structure, error) {
	cell, err := b.cell(c)
	if err != nil {
		return Structure{}, err
	}
	if cell.Structure == nil {
		return Structure{}, fmt.Errorf("%v: %w", c, ErrEmptyCell)
	}
	old := *cell.Structure
	cell.Structure = &Structure{Kind: kind, Owner: old.Owner}
	return old, nil
}

// BlockEdge cuts direct adjacency between two neighboring land cells.
func (b *Board) BlockEdge(a, c hex.Coord) error {
	if !b.Has(a) {
		return fmt.Errorf("%v: %w", a, ErrOffBoard)
	}
	if !b.Has(c) {
		return fmt.Errorf("%v: %w", c, ErrOffBoard)
	}
	if !a.IsNeighbor(c) {
		return fmt.Errorf("%v and %v: %w", a, c, ErrNotAdjacent)
	}
	b.blocked[newEdge(a, c)] = struct{}{}
	return nil
}

// Blocked reports whether the link between two neighboring cells is cut,
// either by an explicit blocked edge or because one side is a river.
func (b *Board) Blocked(a, c hex.Coord) bool {
	ca, okA := b.cells[a]
	cc, okC := b.cells[c]
	if !okA || !okC {
		return false
	}
	if ca.River || cc.River {
		return true
	}
	_, ok := b.blocked[newEdge(a, c)]
	return ok
}

// Cells returns every on-board coordinate ordered by q then r.
func (b *Board) Cells() []hex.Coord {
	coords := make([]hex.Coord, 0, len(b.cells))
	for c := range b.cells {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, hex.Compare)
	return coords
}

// StructuresOf returns the coordinates of owner's structures ordered by q then r.
func (b *Board) StructuresOf(owner int) []hex.Coord {
	coords := []hex.Coord{}
	for c, cell := range b.cells {
		if cell.Structure != nil && cell.Structure.Owner == owner {
			coords = append(coords, c)
		}
	}
	slices.SortFunc(coords, hex.Compare)
	return coords
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		cells:   make(map[hex.Coord]*Cell, len(b.cells)),
		blocked: make(map[edge]struct{}, len(b.blocked)),
	}
	for c, cell := range b.cells {
		out.cells[c] = cell.clone()
	}
	for e := range b.blocked {
		out.blocked[e] = struct{}{}
	}
	return out
}

// BlockedEdges returns every explicit blocked edge as coordinate pairs.
func (b *Board) BlockedEdges() [][2]hex.Coord {
	edges := make([][2]hex.Coord, 0, len(b.blocked))
	for e := range b.blocked {
		edges = append(edges, [2]hex.Coord{e.a, e.b})
	}
	slices.SortFunc(edges, func(x, y [2]hex.Coord) int {
		if c := hex.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return hex.Compare(x[1], y[1])
	})
	return edges
}
