package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"terra/hex"
	"terra/player"
)

// PowerOffer lets Player gain Power for VPCost victory points because From
// built or upgraded next to them. Offers stay open until accepted, declined,
// or the round ends.
type PowerOffer struct {
	ID     int       `json:"id"`
	Player int       `json:"player"`
	From   int       `json:"from"`
	At     hex.Coord `json:"at"`
	Power  int       `json:"power"`
	VPCost int       `json:"vp_cost"`
}

// offerAmount caps a neighbor's power value by what p can still absorb and pay for.
func offerAmount(p *player.Player, value int) int {
	return max(0, min(value, p.Power().MaxUsefulGain(), p.VP()+1))
}

func (g *Game) offerPower(builder int, at hex.Coord) []PowerOffer {
	var offers []PowerOffer
	for _, owner := range g.board.AdjacentOwners(at, builder) {
		value := g.board.AdjacentPowerValue(at, owner, g.rules.PowerValue)
		amount := offerAmount(g.players[owner], value)
		if amount == 0 {
			continue
		}
		g.nextOffer++
		offer := PowerOffer{
			ID:     g.nextOffer,
			Player: owner,
			From:   builder,
			At:     at,
			Power:  amount,
			VPCost: amount - 1,
		}
		g.offers = append(g.offers, offer)
		offers = append(offers, offer)
	}
	return offers
}

// PendingOffers returns the open offers addressed to player, or all of them if player is negative.
func (g *Game) PendingOffers(player int) []PowerOffer {
	out := []PowerOffer{}
	for _, o := range g.offers {
		if player < 0 || o.Player == player {
			out = append(out, o)
		}
	}
	return out
}

func (g *Game) findOffer(playerID, offerID int) (int, error) {
	if _, err := g.player(playerID); err != nil {
		return 0, err
	}
	for i, o := range g.offers {
		if o.ID == offerID && o.Player == playerID {
			return i, nil
		}
	}
	return 0, wrap(ErrIllegalState, fmt.Errorf("offer %d for player %d: %w", offerID, playerID, ErrUnknownOffer))
}

// AcceptOffer settles an open offer. Offers may be accepted out of turn and by
// players who have passed, as long as the action phase is running. The amount
// is capped again against the player's current bowls and VP; the settled
// offer is returned.
func (g *Game) AcceptOffer(playerID, offerID int) (PowerOffer, error) {
	if err := g.requirePhase(ActionPhase); err != nil {
		return PowerOffer{}, err
	}
	i, err := g.findOffer(playerID, offerID)
	if err != nil {
		return PowerOffer{}, err
	}
	offer := g.offers[i]
	p := g.players[playerID]

	offer.Power = offerAmount(p, offer.Power)
	offer.VPCost = max(0, offer.Power-1)
	p.LoseVP(offer.VPCost)
	if err := p.GainPower(offer.Power); err != nil {
		return PowerOffer{}, wrap(ErrInvariantViolation, err)
	}
	g.offers = slices.Delete(g.offers, i, i+1)

	log.Debug().Int("player", playerID).Int("offer", offerID).Int("power", offer.Power).Int("vp_cost", offer.VPCost).Msg("power offer accepted")
	return offer, nil
}

// DeclineOffer discards an open offer and returns it.
func (g *Game) DeclineOffer(playerID, offerID int) (PowerOffer, error) {
	if err := g.requirePhase(ActionPhase); err != nil {
		return PowerOffer{}, err
	}
	i, err := g.findOffer(playerID, offerID)
	if err != nil {
		return PowerOffer{}, err
	}
	offer := g.offers[i]
	g.offers = slices.Delete(g.offers, i, i+1)
	log.Debug().Int("player", playerID).Int("offer", offerID).Msg("power offer declined")
	return offer, nil
}
