// Package bindings maps physical key codes to named game actions and keeps
// the table in a store.
package bindings

import (
	"errors"
	"fmt"
	"maps"

	"github.com/plus3/welltris/engine"
)

// Action is the player-facing name of a bindable command.
type Action string

const (
	Left       Action = "Left"
	Right      Action = "Right"
	Forward    Action = "Forward"
	Backward   Action = "Backward"
	RotateXPos Action = "Rotate X Positive"
	RotateXNeg Action = "Rotate X Negative"
	RotateYPos Action = "Rotate Y Positive"
	RotateYNeg Action = "Rotate Y Negative"
	RotateZPos Action = "Rotate Z Positive"
	RotateZNeg Action = "Rotate Z Negative"
	FastDrop   Action = "Fast Drop"
	DropPiece  Action = "Drop Piece"
	Confirm    Action = "Confirm"
	Cancel     Action = "Cancel"
)

var order = []Action{
	Left, Right, Forward, Backward,
	RotateXPos, RotateXNeg, RotateYPos, RotateYNeg, RotateZPos, RotateZNeg,
	FastDrop, DropPiece, Confirm, Cancel,
}

// Actions returns every bindable action in display order.
func Actions() []Action {
	return append([]Action(nil), order...)
}

var defaults = map[Action]string{
	Left:       "ArrowLeft",
	Right:      "ArrowRight",
	Forward:    "ArrowUp",
	Backward:   "ArrowDown",
	RotateYNeg: "KeyQ",
	RotateYPos: "KeyE",
	RotateXNeg: "KeyA",
	RotateXPos: "KeyD",
	RotateZNeg: "KeyW",
	RotateZPos: "KeyS",
	FastDrop:   "KeyF",
	DropPiece:  "Space",
	Confirm:    "Enter",
	Cancel:     "Escape",
}

// Keys that drive the menus and can never be assigned.
var reserved = map[string]bool{
	"ArrowUp":   true,
	"ArrowDown": true,
	"Enter":     true,
}

// Keys that clear a binding instead of assigning themselves.
var unbindKeys = map[string]bool{
	"Delete":    true,
	"Backspace": true,
}

var (
	ErrUnknownAction = errors.New("bindings: unknown action")
	ErrReservedKey   = errors.New("bindings: key is reserved")
	ErrKeyInUse      = errors.New("bindings: key already bound")
)

// Table is a bidirectional map between actions and key codes. An action may
// be unbound; a key is bound to at most one action.
type Table struct {
	keys map[Action]string
}

// Default returns the factory bindings.
func Default() *Table {
	return &Table{keys: maps.Clone(defaults)}
}

func known(a Action) bool {
	_, ok := defaults[a]
	return ok
}

// Key returns the key bound to a, or "" when a is unbound.
func (t *Table) Key(a Action) string {
	return t.keys[a]
}

// ActionFor returns the action bound to key.
func (t *Table) ActionFor(key string) (Action, bool) {
	if key == "" {
		return "", false
	}
	for _, a := range order {
		if t.keys[a] == key {
			return a, true
		}
	}
	return "", false
}

// Rebind assigns key to a. Delete and Backspace unbind a instead.
func (t *Table) Rebind(a Action, key string) error {
	if !known(a) {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	if unbindKeys[key] {
		t.Unbind(a)
		return nil
	}
	if t.keys[a] == key {
		return nil
	}
	if reserved[key] {
		return fmt.Errorf("%w: %s", ErrReservedKey, key)
	}
	if other, ok := t.ActionFor(key); ok {
		return fmt.Errorf("%w: %s is bound to %s", ErrKeyInUse, key, other)
	}
	t.keys[a] = key
	return nil
}

func (t *Table) Unbind(a Action) {
	if known(a) {
		t.keys[a] = ""
	}
}

func (t *Table) Clone() *Table {
	return &Table{keys: maps.Clone(t.keys)}
}

// Validate rejects tables with unknown actions or a key bound twice.
func (t *Table) Validate() error {
	seen := make(map[string]Action, len(t.keys))
	for a, key := range t.keys {
		if !known(a) {
			return fmt.Errorf("%w: %q", ErrUnknownAction, a)
		}
		if key == "" {
			continue
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s is bound to both %s and %s", ErrKeyInUse, key, other, a)
		}
		seen[key] = a
	}
	return nil
}

// EngineAction maps an action and a key transition to an engine command.
// Fast drop follows the key: pressing enables it and releasing disables it.
// Every other action fires on press only.
func EngineAction(a Action, released bool) (engine.Action, bool) {
	if released {
		if a == FastDrop {
			return engine.ActionFastDropOff, true
		}
		return 0, false
	}
	ea, ok := engineActions[a]
	return ea, ok
}

var engineActions = map[Action]engine.Action{
	Left:       engine.ActionLeft,
	Right:      engine.ActionRight,
	Forward:    engine.ActionForward,
	Backward:   engine.ActionBackward,
	RotateXPos: engine.ActionRotateXPos,
	RotateXNeg: engine.ActionRotateXNeg,
	RotateYPos: engine.ActionRotateYPos,
	RotateYNeg: engine.ActionRotateYNeg,
	RotateZPos: engine.ActionRotateZPos,
	RotateZNeg: engine.ActionRotateZNeg,
	FastDrop:   engine.ActionFastDropOn,
	DropPiece:  engine.ActionHardDrop,
}
