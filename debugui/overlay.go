package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/sim"
)

// Overlay draws the inspector windows on top of an ebiten game.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	scheduler *sim.Scheduler
	panels    *sim.Resource[Panels]
	input     *sim.Resource[ImguiInputState]
}

// NewOverlay creates the ImGui backend and the default windows for g. It
// opens the ebiten window, so it replaces ebiten.SetWindowSize and
// ebiten.SetWindowTitle in the host.
func NewOverlay(g *engine.Game, title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	resources := sim.NewResources()
	o := &Overlay{
		backend:   backend,
		scheduler: sim.NewScheduler(resources),
		panels:    sim.NewResource(resources, Panels{}),
		input:     sim.NewResource(resources, ImguiInputState{}),
	}
	o.scheduler.Register(&ImguiSystem{})

	o.Add(SessionWindow(g))
	o.Add(LayerFillWindow(g))
	o.Add(NewPerformanceStats(g.Scheduler(), 120).Item())
	return o
}

// Add registers another window.
func (o *Overlay) Add(item ImguiItem) {
	panels := o.panels.Get()
	panels.Items = append(panels.Items, item)
}

// Update builds this frame's windows. Call it once per ebiten Update.
func (o *Overlay) Update(dt float64) {
	o.backend.BeginFrame()
	o.scheduler.Once(dt)
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
