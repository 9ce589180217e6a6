package game

import (
	"terra/board"
	"terra/rules"
)

type config struct {
	rules     *rules.Rules
	board     *board.Board
	maxRounds int
	names     []string
}

type Option func(*config)

// WithRules replaces the standard ruleset.
func WithRules(r *rules.Rules) Option {
	return func(c *config) {
		if r != nil {
			c.rules = r
		}
	}
}

// WithBoard plays on b instead of the default board. The game takes ownership of b.
func WithBoard(b *board.Board) Option {
	return func(c *config) {
		if b != nil {
			c.board = b
		}
	}
}

func WithMaxRounds(rounds int) Option {
	return func(c *config) {
		if rounds > 0 {
			c.maxRounds = rounds
		}
	}
}

// WithNames names the players by seat.
func WithNames(names ...string) Option {
	return func(c *config) {
		c.names = names
	}
}
