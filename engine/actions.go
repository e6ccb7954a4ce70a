package engine

import (
	"fmt"

	"github.com/plus3/welltris/piece"
)

// Action is a player command against the falling piece.
type Action uint8

const (
	ActionLeft Action = iota + 1
	ActionRight
	ActionForward
	ActionBackward
	ActionRotateXPos
	ActionRotateXNeg
	ActionRotateYPos
	ActionRotateYNeg
	ActionRotateZPos
	ActionRotateZNeg
	ActionFastDropOn
	ActionFastDropOff
	ActionHardDrop
)

var actionNames = [...]string{
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionForward:     "Forward",
	ActionBackward:    "Backward",
	ActionRotateXPos:  "RotateXPos",
	ActionRotateXNeg:  "RotateXNeg",
	ActionRotateYPos:  "RotateYPos",
	ActionRotateYNeg:  "RotateYNeg",
	ActionRotateZPos:  "RotateZPos",
	ActionRotateZNeg:  "RotateZNeg",
	ActionFastDropOn:  "FastDropToggleOn",
	ActionFastDropOff: "FastDropToggleOff",
	ActionHardDrop:    "HardDrop",
}

func (a Action) String() string {
	if int(a) < len(actionNames) && actionNames[a] != "" {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name != "" && name == s {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("engine: unknown action %q", s)
}

// Actions lists every action in declaration order.
func Actions() []Action {
	actions := make([]Action, 0, len(actionNames)-1)
	for a := ActionLeft; a <= ActionHardDrop; a++ {
		actions = append(actions, a)
	}
	return actions
}

var translations = map[Action]piece.Vec3{
	ActionLeft:     {X: -1},
	ActionRight:    {X: 1},
	ActionForward:  {Z: -1},
	ActionBackward: {Z: 1},
}

var rotations = map[Action]piece.Euler{
	ActionRotateXPos: piece.QuarterXPos,
	ActionRotateXNeg: piece.QuarterXNeg,
	ActionRotateYPos: piece.QuarterYPos,
	ActionRotateYNeg: piece.QuarterYNeg,
	ActionRotateZPos: piece.QuarterZPos,
	ActionRotateZNeg: piece.QuarterZNeg,
}
