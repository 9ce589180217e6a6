package game

import (
	"terra/board"
	"terra/hex"
	"terra/power"
	"terra/rules"
)

type StructureView struct {
	At   hex.Coord           `json:"at"`
	Kind board.StructureKind `json:"kind"`
}

type PlayerView struct {
	ID           int                         `json:"id"`
	Name         string                      `json:"name"`
	Faction      rules.Faction               `json:"faction"`
	Home         board.Terrain               `json:"home"`
	Workers      int                         `json:"workers"`
	Coins        int                         `json:"coins"`
	Spades       int                         `json:"spades"`
	Power        power.State                 `json:"power"`
	PowerTotal   int                         `json:"power_total"`
	VP           int                         `json:"vp"`
	Shipping     int                         `json:"shipping"`
	Terraforming int                         `json:"terraforming"`
	Passed       bool                        `json:"passed"`
	Structures   []StructureView             `json:"structures"`
	Supply       map[board.StructureKind]int `json:"supply"`
	Cult         []int                       `json:"cult"`
	Income       rules.Income                `json:"income"`
}

type CellView struct {
	At        hex.Coord        `json:"at"`
	Terrain   board.Terrain    `json:"terrain"`
	River     bool             `json:"river,omitempty"`
	Structure *board.Structure `json:"structure,omitempty"`
}

// View is a detached snapshot of the game. Changing it does not affect the game.
type View struct {
	Phase     Phase        `json:"phase"`
	Round     int          `json:"round"`
	MaxRounds int          `json:"max_rounds"`
	Current   *int         `json:"current,omitempty"`
	TurnOrder []int        `json:"turn_order"`
	Passed    []int        `json:"passed"`
	Players   []PlayerView `json:"players"`
	Board     []CellView   `json:"board"`
	Offers    []PowerOffer `json:"offers"`
	Standings []Standing   `json:"standings,omitempty"`
	Hash      StateHash    `json:"hash"`
}

func (g *Game) View() View {
	v := View{
		Phase:     g.phase,
		Round:     g.round,
		MaxRounds: g.MaxRounds(),
		TurnOrder: g.order.Active(),
		Passed:    g.order.PassedOrder(),
		Offers:    g.PendingOffers(-1),
		Hash:      g.Hash(),
	}
	if current, ok := g.CurrentPlayer(); ok {
		v.Current = &current
	}
	if g.phase == EndedPhase {
		v.Standings = g.Standings()
	}

	for i, p := range g.players {
		pv := PlayerView{
			ID:           p.ID(),
			Name:         p.Name(),
			Faction:      p.Faction(),
			Home:         p.Home(),
			Workers:      p.Workers(),
			Coins:        p.Coins(),
			Spades:       p.Spades(),
			Power:        p.Power().State(),
			PowerTotal:   p.Power().Total(),
			VP:           p.VP(),
			Shipping:     p.Shipping(),
			Terraforming: p.Terraforming(),
			Passed:       p.Passed(),
			Structures:   []StructureView{},
			Supply:       make(map[board.StructureKind]int, len(board.StructureKinds)),
			Cult:         g.cults.Levels(i),
			Income:       g.income(p),
		}
		for _, c := range p.Structures() {
			kind, _ := p.StructureAt(c)
			pv.Structures = append(pv.Structures, StructureView{At: c, Kind: kind})
		}
		for _, k := range board.StructureKinds {
			pv.Supply[k] = p.Supply(k)
		}
		v.Players = append(v.Players, pv)
	}

	for _, c := range g.board.Cells() {
		cell, _ := g.board.Cell(c)
		v.Board = append(v.Board, CellView{At: c, Terrain: cell.Terrain, River: cell.River, Structure: cell.Structure})
	}
	return v
}
