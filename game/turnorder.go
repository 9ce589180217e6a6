package game

import (
	"golang.org/x/exp/slices"

	"terra/utils"
)

// TurnOrder cycles through the players who have not passed this round.
// Players leave the active queue when they pass; the order in which they
// passed becomes the next round's order.
type TurnOrder struct {
	active  []int
	passed  []int
	current int
}

func NewTurnOrder(order []int) *TurnOrder {
	return &TurnOrder{active: slices.Clone(order), passed: []int{}}
}

// Current returns the player whose turn it is, or false once everyone passed.
func (t *TurnOrder) Current() (int, bool) {
	if len(t.active) == 0 {
		return 0, false
	}
	return t.active[t.current], true
}

// Advance moves to the next active player, wrapping around.
func (t *TurnOrder) Advance() {
	if len(t.active) > 0 {
		t.current = (t.current + 1) % len(t.active)
	}
}

// Pass removes player from the active queue. The turn moves to the player
// that followed them.
func (t *TurnOrder) Pass(player int) {
	i := utils.FindIndex(t.active, player)
	if i < 0 {
		return
	}
	t.active = utils.Remove(t.active, player)
	t.passed = append(t.passed, player)
	if i < t.current {
		t.current--
	}
	if t.current >= len(t.active) {
		t.current = 0
	}
}

func (t *TurnOrder) AllPassed() bool {
	return len(t.active) == 0
}

// NextRound returns the order for the next round: passed players first, in the
// order they passed, then anyone still active.
func (t *TurnOrder) NextRound() []int {
	return append(slices.Clone(t.passed), t.active...)
}

func (t *TurnOrder) Active() []int {
	return slices.Clone(t.active)
}

func (t *TurnOrder) PassedOrder() []int {
	return slices.Clone(t.passed)
}
