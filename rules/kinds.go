package rules

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"terra/utils"
)

var ErrUnknownName = errors.New("unknown name")

func parseName(names []string, what, name string) (int, error) {
	i := utils.FindIndex(names, strings.ToLower(strings.TrimSpace(name)))
	if i < 0 {
		return 0, fmt.Errorf("%s %q: %w", what, name, ErrUnknownName)
	}
	return i, nil
}

func nameOf(names []string, what string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", what, i)
	}
	return names[i]
}

type Faction int

const (
	Witches Faction = iota
	Engineers
	Nomads
	Halflings
	Mermaids
	Giants
)

var factionNames = []string{"witches", "engineers", "nomads", "halflings", "mermaids", "giants"}

func ParseFaction(name string) (Faction, error) {
	i, err := parseName(factionNames, "faction", name)
	return Faction(i), err
}

func (f Faction) String() string { return nameOf(factionNames, "faction", int(f)) }

func (f Faction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Faction) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseFaction(node.Value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// SpecialKind names a special action.
type SpecialKind int

const (
	GainSpades SpecialKind = iota
	GainWorkers
	GainCoins
	AdvanceShipping
	AdvanceTerraforming
	Sacrifice
)

var specialNames = []string{"gain_spades", "gain_workers", "gain_coins", "advance_shipping", "advance_terraforming", "sacrifice"}

func ParseSpecialKind(name string) (SpecialKind, error) {
	i, err := parseName(specialNames, "special action", name)
	return SpecialKind(i), err
}

func (k SpecialKind) String() string { return nameOf(specialNames, "special", int(k)) }

func (k SpecialKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *SpecialKind) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseSpecialKind(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Scoring is what a round bonus tile pays for.
type Scoring int

const (
	ScoreDwelling Scoring = iota
	ScoreTradingHouse
	ScoreSpade
	ScoreTemple
	ScoreStrongholdSanctuary
	ScoreCult
)

var scoringNames = []string{"dwelling", "trading_house", "spade", "temple", "stronghold_sanctuary", "cult"}

func ParseScoring(name string) (Scoring, error) {
	i, err := parseName(scoringNames, "round scoring", name)
	return Scoring(i), err
}

func (s Scoring) String() string { return nameOf(scoringNames, "scoring", int(s)) }

func (s Scoring) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Scoring) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseScoring(node.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
