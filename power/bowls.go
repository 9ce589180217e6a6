// Package power implements the three-bowl power token economy.
//
// Tokens circulate I -> II -> III when power is gained and III -> I when it is
// spent. Only tokens in bowl III can be spent. The token total never changes
// except through Sacrifice, which destroys tokens permanently.
package power

import (
	"errors"
	"fmt"
)

// Tokens is the canonical number of power tokens a player starts with.
const Tokens = 12

var (
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrInsufficientPower  = errors.New("insufficient power in bowl III")
	ErrInsufficientTokens = errors.New("insufficient tokens in bowl II")
	ErrInvariant          = errors.New("power token invariant violated")
)

// State is a snapshot of the three bowls.
type State struct {
	I   int `json:"bowl_1"`
	II  int `json:"bowl_2"`
	III int `json:"bowl_3"`
}

// Sum returns the number of tokens across all bowls.
func (s State) Sum() int {
	return s.I + s.II + s.III
}

// Bowls holds a player's power tokens. The zero value is an empty pool.
type Bowls struct {
	bowl1 int
	bowl2 int
	bowl3 int
	total int
}

// New creates bowls with the given distribution. The total is fixed to their sum.
func New(bowl1, bowl2, bowl3 int) (Bowls, error) {
	if bowl1 < 0 || bowl2 < 0 || bowl3 < 0 {
		return Bowls{}, fmt.Errorf("bowls (%d,%d,%d): %w", bowl1, bowl2, bowl3, ErrNegativeAmount)
	}
	return Bowls{
		bowl1: bowl1,
		bowl2: bowl2,
		bowl3: bowl3,
		total: bowl1 + bowl2 + bowl3,
	}, nil
}

// Standard creates bowls holding exactly Tokens tokens, none of them in bowl III.
func Standard(bowl1, bowl2 int) (Bowls, error) {
	if bowl1+bowl2 != Tokens {
		return Bowls{}, fmt.Errorf("total tokens must equal %d, got %d: %w", Tokens, bowl1+bowl2, ErrInvariant)
	}
	return New(bowl1, bowl2, 0)
}

func (b Bowls) State() State {
	return State{I: b.bowl1, II: b.bowl2, III: b.bowl3}
}

// Available returns the spendable power (tokens in bowl III).
func (b Bowls) Available() int {
	return b.bowl3
}

// Total returns the tokens in circulation. It only shrinks through Sacrifice.
func (b Bowls) Total() int {
	return b.total
}

// MaxUsefulGain returns the largest gain that still moves tokens.
// Bowl I tokens need two steps to reach bowl III.
func (b Bowls) MaxUsefulGain() int {
	return 2*b.bowl1 + b.bowl2
}

// Gain moves up to amount tokens from bowl I to II, then any remainder from II to III.
// Gain beyond what the bowls can absorb is silently dropped.
func (b *Bowls) Gain(amount int) error {
	if amount < 0 {
		return fmt.Errorf("gain %d: %w", amount, ErrNegativeAmount)
	}
	*b = b.gained(amount)
	return nil
}

// Spend moves amount tokens from bowl III back to bowl I.
func (b *Bowls) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("spend %d: %w", amount, ErrNegativeAmount)
	}
	if amount > b.bowl3 {
		return fmt.Errorf("need %d, have %d: %w", amount, b.bowl3, ErrInsufficientPower)
	}
	b.bowl3 -= amount
	b.bowl1 += amount
	return nil
}

// Sacrifice destroys amount tokens from bowl II and moves another amount from II to III.
// Bowl II must hold at least 2*amount tokens.
func (b *Bowls) Sacrifice(amount int) error {
	if amount < 0 {
		return fmt.Errorf("sacrifice %d: %w", amount, ErrNegativeAmount)
	}
	if need := 2 * amount; b.bowl2 < need {
		return fmt.Errorf("need %d in bowl II to sacrifice %d, have %d: %w", need, amount, b.bowl2, ErrInsufficientTokens)
	}
	b.bowl2 -= 2 * amount
	b.bowl3 += amount
	b.total -= amount
	return nil
}

// CanSacrifice reports whether Sacrifice(amount) would succeed.
func (b Bowls) CanSacrifice(amount int) bool {
	return amount >= 0 && b.bowl2 >= 2*amount
}

// SacrificeOptions lists every positive amount that could be sacrificed.
func (b Bowls) SacrificeOptions() []int {
	options := []int{}
	for n := 1; 2*n <= b.bowl2; n++ {
		options = append(options, n)
	}
	return options
}

// Simulate returns the state a gain of amount would produce, leaving b unchanged.
func (b Bowls) Simulate(amount int) State {
	if amount < 0 {
		return b.State()
	}
	return b.gained(amount).State()
}

func (b Bowls) gained(amount int) Bowls {
	step := min(amount, b.bowl1)
	b.bowl1 -= step
	b.bowl2 += step
	amount -= step

	step = min(amount, b.bowl2)
	b.bowl2 -= step
	b.bowl3 += step
	return b
}

// Check verifies that no bowl is negative and the bowls sum to the total.
func (b Bowls) Check() error {
	if b.bowl1 < 0 || b.bowl2 < 0 || b.bowl3 < 0 {
		return fmt.Errorf("negative bowl in (%d,%d,%d): %w", b.bowl1, b.bowl2, b.bowl3, ErrInvariant)
	}
	if sum := b.bowl1 + b.bowl2 + b.bowl3; sum != b.total {
		return fmt.Errorf("bowls sum to %d, total is %d: %w", sum, b.total, ErrInvariant)
	}
	return nil
}

func (b Bowls) String() string {
	return fmt.Sprintf("%d/%d/%d", b.bowl1, b.bowl2, b.bowl3)
}
