// Package debugui renders Dear ImGui inspector windows over the game: the
// live session, a per-layer fill plot and scheduler timings. Windows are
// registered as panels and drawn by a small scheduler of their own, one pass
// per host frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/welltris/sim"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// Panels is the set of windows drawn every frame.
type Panels struct {
	Items []ImguiItem
}

// ImguiInputState tracks whether Dear ImGui is consuming input. Hosts check
// it before forwarding keys to the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem records the input capture state and defers every panel's
// render function.
type ImguiSystem struct {
	Panels     sim.Resource[Panels]
	InputState sim.Resource[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *sim.Frame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range i.Panels.Get().Items {
		frame.Commands.Defer(item.Render)
	}
}
