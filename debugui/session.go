package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/well"
)

// SessionWindow shows the live session of g.
func SessionWindow(g *engine.Game) ImguiItem {
	return ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)

		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		s := g.Session()
		imgui.Text(fmt.Sprintf("Mode: %s (%s)", s.Mode, s.Outcome))
		imgui.Text(fmt.Sprintf("Seed: %d", g.Seed()))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Score: %d", s.Score))
		imgui.Text(fmt.Sprintf("Level: %d  Speed: %.4f", s.Level, s.FallingSpeed))
		imgui.Text(fmt.Sprintf("Layers: %d  Pieces: %d  Bombs: %d", s.LayersCleared, s.PiecesPlaced, s.Explosions))
		if s.Mode == engine.ModeStory {
			imgui.Text(fmt.Sprintf("Opponent HP: %d  Time: %.1f", s.OpponentHP, s.TimeRemaining))
		}
		imgui.Separator()

		if s.Active != nil {
			imgui.Text(fmt.Sprintf("Active: %s", s.Active))
		} else {
			imgui.Text("Active: none")
		}
		imgui.Text(fmt.Sprintf("Next: %s", s.Next.Kind))

		rotation := g.Rotation()
		imgui.Text(fmt.Sprintf("Rotating: %v  Queued: %d  Cooldown: %d", rotation.Animating(), rotation.Pending(), rotation.Cooldown()))
		imgui.Checkbox("Fast drop", &s.FastDrop)

		if imgui.TreeNodeStr("Column heights") {
			renderHeights(s.Well)
			imgui.TreePop()
		}

		imgui.End()
	}}
}

func renderHeights(grid *well.Grid) {
	heights := grid.Heights()
	if len(heights) == 0 {
		return
	}
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("Heights", int32(len(heights[0])), tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	for _, row := range heights {
		imgui.TableNextRow()
		for _, h := range row {
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", h))
		}
	}
	imgui.EndTable()
}

// LayerFillWindow plots how full each layer of the well is, bottom first.
func LayerFillWindow(g *engine.Game) ImguiItem {
	var fill []float32
	return ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 160), imgui.CondOnce)

		if !imgui.BeginV("Layer Fill", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		fill = LayerFill(g.Session().Well, fill)
		if len(fill) > 0 {
			imgui.PlotHistogramFloatPtr("##fill", &fill[0], int32(len(fill)))
		}
		imgui.End()
	}}
}

// LayerFill writes the occupied fraction of every layer into dst, reusing
// its storage.
func LayerFill(grid *well.Grid, dst []float32) []float32 {
	dst = dst[:0]
	area := float32(grid.Width() * grid.Depth())
	for y := 0; y < grid.Height(); y++ {
		dst = append(dst, float32(grid.LayerCount(y))/area)
	}
	return dst
}
