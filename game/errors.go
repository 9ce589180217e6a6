package game

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by Execute, AcceptOffer and
// DeclineOffer matches exactly one of them with errors.Is.
var (
	ErrInvalidCoordinate     = errors.New("invalid coordinate")
	ErrIllegalState          = errors.New("illegal state")
	ErrIllegalPlacement      = errors.New("illegal placement")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvariantViolation    = errors.New("invariant violation")
)

var (
	ErrWrongPhase     = errors.New("not allowed in this phase")
	ErrGameEnded      = errors.New("game has ended")
	ErrNotYourTurn    = errors.New("not the player's turn")
	ErrAlreadyPassed  = errors.New("player already passed this round")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownOffer   = errors.New("no such power offer")
	ErrUnknownAction  = errors.New("unknown action")
	ErrSameTerrain    = errors.New("cell already has that terrain")
	ErrWrongTerrain   = errors.New("cell is not the player's home terrain")
	ErrNotAdjacent    = errors.New("cell is not adjacent to the player's structures")
	ErrNotBuildable   = errors.New("structure kind cannot be built directly")
	ErrInvalidUpgrade = errors.New("no upgrade path between these structures")
	ErrNotOwner       = errors.New("structure belongs to another player")
)

// Error codes reported by Code.
const (
	CodeInvalidCoordinate = "E_INVALID_COORDINATE"
	CodeIllegalState      = "E_ILLEGAL_STATE"
	CodeIllegalPlacement  = "E_ILLEGAL_PLACEMENT"
	CodeNoResource        = "E_NO_RESOURCE"
	CodeInternal          = "E_INTERNAL"
)

// wrap tags err with a category while keeping err itself matchable.
func wrap(category, err error) error {
	return fmt.Errorf("%w: %w", category, err)
}

// Code maps an error to a stable code. It returns "" for nil.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvariantViolation):
		return CodeInternal
	case errors.Is(err, ErrInvalidCoordinate):
		return CodeInvalidCoordinate
	case errors.Is(err, ErrIllegalState):
		return CodeIllegalState
	case errors.Is(err, ErrIllegalPlacement):
		return CodeIllegalPlacement
	case errors.Is(err, ErrInsufficientResources):
		return CodeNoResource
	default:
		return CodeInternal
	}
}
