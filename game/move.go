package game

import (
	"fmt"

	"terra/board"
	"terra/hex"
	"terra/rules"
)

// Action is one player move. The set of actions is closed: Transform, Build,
// Upgrade, Special and Pass.
type Action interface {
	PlayerID() int
	Type() ActionType
	String() string
	isAction()
}

// Transform changes the terrain of an empty cell.
type Transform struct {
	Player  int           `json:"player"`
	At      hex.Coord     `json:"at"`
	Terrain board.Terrain `json:"terrain"`
}

// Build places a directly buildable structure on an empty home-terrain cell.
type Build struct {
	Player int                 `json:"player"`
	At     hex.Coord           `json:"at"`
	Kind   board.StructureKind `json:"kind"`
}

// Upgrade replaces one of the player's structures with a higher tier.
type Upgrade struct {
	Player int                 `json:"player"`
	At     hex.Coord           `json:"at"`
	Kind   board.StructureKind `json:"kind"`
}

// Special performs a special action. Amount is only used by Sacrifice.
type Special struct {
	Player int               `json:"player"`
	Kind   rules.SpecialKind `json:"kind"`
	Amount int               `json:"amount,omitempty"`
}

type Pass struct {
	Player int `json:"player"`
}

func NewTransform(player int, at hex.Coord, terrain board.Terrain) Transform {
	return Transform{Player: player, At: at, Terrain: terrain}
}

func NewBuild(player int, at hex.Coord) Build {
	return Build{Player: player, At: at, Kind: board.Dwelling}
}

func NewUpgrade(player int, at hex.Coord, kind board.StructureKind) Upgrade {
	return Upgrade{Player: player, At: at, Kind: kind}
}

func NewSpecial(player int, kind rules.SpecialKind) Special {
	return Special{Player: player, Kind: kind}
}

func NewSacrifice(player, amount int) Special {
	return Special{Player: player, Kind: rules.Sacrifice, Amount: amount}
}

func NewPass(player int) Pass {
	return Pass{Player: player}
}

func (a Transform) PlayerID() int { return a.Player }
func (a Build) PlayerID() int     { return a.Player }
func (a Upgrade) PlayerID() int   { return a.Player }
func (a Special) PlayerID() int   { return a.Player }
func (a Pass) PlayerID() int      { return a.Player }

func (Transform) Type() ActionType { return TransformAction }
func (Build) Type() ActionType     { return BuildAction }
func (Upgrade) Type() ActionType   { return UpgradeAction }
func (Special) Type() ActionType   { return SpecialAction }
func (Pass) Type() ActionType      { return PassAction }

func (Transform) isAction() {}
func (Build) isAction()     {}
func (Upgrade) isAction()   {}
func (Special) isAction()   {}
func (Pass) isAction()      {}

func (a Transform) String() string {
	return fmt.Sprintf("transform %v to %v", a.At, a.Terrain)
}

func (a Build) String() string {
	return fmt.Sprintf("build %v at %v", a.Kind, a.At)
}

func (a Upgrade) String() string {
	return fmt.Sprintf("upgrade %v to %v", a.At, a.Kind)
}

func (a Special) String() string {
	if a.Kind == rules.Sacrifice {
		return fmt.Sprintf("%v %d", a.Kind, a.Amount)
	}
	return a.Kind.String()
}

func (Pass) String() string {
	return "pass"
}
