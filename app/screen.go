package app

import "fmt"

// Screen is a top-level UI state.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenMenu
	ScreenStory
	ScreenGame
	ScreenGameOver
	ScreenWin
	ScreenKeyConfig
)

var screenNames = [...]string{
	ScreenTitle:     "title",
	ScreenMenu:      "menu",
	ScreenStory:     "story",
	ScreenGame:      "game",
	ScreenGameOver:  "game-over",
	ScreenWin:       "win",
	ScreenKeyConfig: "key-config",
}

func (s Screen) String() string {
	if int(s) >= 0 && int(s) < len(screenNames) {
		return screenNames[s]
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

type menuOption int

const (
	menuStory menuOption = iota
	menuArcade
	menuKeys
)

var menuLabels = []string{"Story Mode", "Arcade Mode", "Reconfigure Keys"}

// Navigation keys used by every menu regardless of bindings.
const (
	keyUp    = "ArrowUp"
	keyDown  = "ArrowDown"
	keyEnter = "Enter"
	keySpace = "Space"
	keyEsc   = "Escape"
)

// Input is a raw key transition from a device adapter. Key holds a DOM-style
// key code such as "KeyQ" or "ArrowLeft".
type Input struct {
	Key      string
	Released bool
}

// View is what a presentation layer needs to draw a non-game screen and the
// game HUD.
type View struct {
	Screen   Screen
	Title    string
	Lines    []string
	Options  []string
	Selected int
	Notice   string
}
