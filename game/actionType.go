package game

import "fmt"

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	TransformAction ActionType = iota
	BuildAction
	UpgradeAction
	SpecialAction
	PassAction
)

var actionTypeNames = [...]string{"transform", "build", "upgrade", "special", "pass"}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return fmt.Sprintf("action(%d)", int(t))
	}
	return actionTypeNames[t]
}

func (t ActionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
