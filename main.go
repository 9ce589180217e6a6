package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"terra/game"
	"terra/gamemaster"
	"terra/rules"
)

func main() {
	rulesPath := flag.String("rules", "", "YAML rules file (default: embedded standard rules)")
	factionList := flag.String("factions", "witches,engineers", "Comma-separated factions, in seat order")
	rounds := flag.Int("rounds", 0, "Number of rounds (default: from the rules)")
	passes := flag.Bool("passes", false, "Play the game out with every player passing and print the standings")
	verbose := flag.Bool("v", false, "Log every action")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(*rulesPath, *factionList, *rounds, *passes); err != nil {
		log.Error().Err(err).Msg("terra failed")
		os.Exit(1)
	}
}

func run(rulesPath, factionList string, rounds int, passes bool) error {
	r := rules.Standard()
	if rulesPath != "" {
		loaded, err := rules.Load(rulesPath)
		if err != nil {
			return err
		}
		r = loaded
	}

	var factions []rules.Faction
	for _, name := range strings.Split(factionList, ",") {
		f, err := rules.ParseFaction(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		factions = append(factions, f)
	}

	m := gamemaster.Default()
	id, err := m.Create(factions, game.WithRules(r), game.WithMaxRounds(rounds))
	if err != nil {
		return err
	}
	defer m.Remove(id)

	if !passes {
		v, err := m.View(id)
		if err != nil {
			return err
		}
		return printJSON(v)
	}

	for {
		v, err := m.View(id)
		if err != nil {
			return err
		}
		if v.Current == nil {
			return printJSON(v.Standings)
		}
		if _, err := m.Play(id, game.NewPass(*v.Current)); err != nil {
			return fmt.Errorf("round %d: %w", v.Round, err)
		}
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
