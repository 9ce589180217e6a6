package rules

// Ability is a faction's fixed set of cost modifiers.
type Ability struct {
	spades      func(distance int) int
	build       func(Cost) Cost
	bonusSpades int
}

func unchangedSpades(distance int) int { return distance }

func unchangedBuild(c Cost) Cost { return c }

var abilities = map[Faction]Ability{
	Witches: {spades: unchangedSpades, build: unchangedBuild},
	Engineers: {
		spades: unchangedSpades,
		build: func(c Cost) Cost {
			c.Workers /= 2
			c.Coins /= 2
			return c
		},
	},
	Nomads: {
		spades: func(distance int) int {
			if distance == 0 {
				return 0
			}
			return max(1, distance-1)
		},
		build: unchangedBuild,
	},
	Halflings: {spades: unchangedSpades, build: unchangedBuild, bonusSpades: 1},
	Mermaids:  {spades: unchangedSpades, build: unchangedBuild},
	Giants: {
		spades: func(distance int) int {
			return min(distance, 2)
		},
		build: unchangedBuild,
	},
}

// Ability returns the faction's modifiers. Unknown factions have none.
func (f Faction) Ability() Ability {
	if a, ok := abilities[f]; ok {
		return a
	}
	return Ability{spades: unchangedSpades, build: unchangedBuild}
}

// TerrainCost returns the spades needed to transform terrain distance steps around the cycle.
func (a Ability) TerrainCost(distance int) int {
	if distance <= 0 {
		return 0
	}
	return a.spades(distance)
}

// BuildCost applies the faction's discount to a build or upgrade cost.
func (a Ability) BuildCost(c Cost) Cost {
	return a.build(c)
}

// BonusSpades is the number of extra spades the faction gets from spade-granting actions.
func (a Ability) BonusSpades() int {
	return a.bonusSpades
}
