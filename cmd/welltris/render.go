package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/welltris/app"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/well"
)

const (
	cellSize   = 40
	sideCell   = 24
	wellLeft   = 40
	wellTop    = 60
	lineHeight = 16
)

var (
	gridColor   = color.RGBA{60, 60, 80, 255}
	shadowColor = color.RGBA{255, 255, 255, 60}
	activeEdge  = color.RGBA{255, 255, 255, 255}
)

func drawView(screen *ebiten.Image, v app.View) {
	x, y := 80, 80
	ebitenutil.DebugPrintAt(screen, v.Title, x, y)
	y += 2 * lineHeight

	for _, line := range v.Lines {
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += lineHeight
	}
	if len(v.Options) > 0 {
		y += lineHeight
		for i, opt := range v.Options {
			prefix := "  "
			if i == v.Selected {
				prefix = "> "
			}
			ebitenutil.DebugPrintAt(screen, prefix+opt, x, y)
			y += lineHeight
		}
	}
	if v.Notice != "" {
		ebitenutil.DebugPrintAt(screen, v.Notice, x, y+lineHeight)
	}
}

// drawGame renders a top-down view of the well, where brighter columns are
// taller, next to a side view collapsed along depth.
func drawGame(screen *ebiten.Image, g *engine.Game, v app.View) {
	s := g.Session()
	grid := s.Well

	drawTopDown(screen, grid)
	if s.Shadow != nil {
		for _, c := range s.Shadow.Cells() {
			vector.DrawFilledRect(screen, topX(c.X), topY(c.Z), cellSize, cellSize, shadowColor, false)
		}
	}
	if s.Active != nil {
		drawActive(screen, *s.Active)
	}

	sideLeft := float32(wellLeft + grid.Width()*cellSize + 40)
	drawSide(screen, grid, s.Active, sideLeft)

	hudX := int(sideLeft) + grid.Width()*sideCell + 40
	ebitenutil.DebugPrintAt(screen, v.Title, hudX, wellTop)
	for i, line := range v.Lines {
		ebitenutil.DebugPrintAt(screen, line, hudX, wellTop+(i+2)*lineHeight)
	}
}

func topX(x int) float32 { return float32(wellLeft + x*cellSize) }
func topY(z int) float32 { return float32(wellTop + z*cellSize) }

func drawTopDown(screen *ebiten.Image, grid *well.Grid) {
	heights := grid.Heights()
	for z, row := range heights {
		for x, h := range row {
			px, py := topX(x), topY(z)
			if h > 0 {
				m := grid.At(well.Coord{X: x, Y: h - 1, Z: z})
				vector.DrawFilledRect(screen, px, py, cellSize, cellSize, shade(m, h, grid.Height()), false)
			}
			vector.StrokeRect(screen, px, py, cellSize, cellSize, 1, gridColor, false)
		}
	}
}

func drawActive(screen *ebiten.Image, p piece.Instance) {
	c := materialColor(p.Material)
	for _, cell := range p.Cells() {
		px, py := topX(cell.X), topY(cell.Z)
		vector.DrawFilledRect(screen, px+4, py+4, cellSize-8, cellSize-8, c, false)
		vector.StrokeRect(screen, px+4, py+4, cellSize-8, cellSize-8, 2, activeEdge, false)
	}
}

func drawSide(screen *ebiten.Image, grid *well.Grid, active *piece.Instance, left float32) {
	bottom := float32(wellTop + grid.Height()*sideCell)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			px := left + float32(x*sideCell)
			py := bottom - float32((y+1)*sideCell)
			for z := 0; z < grid.Depth(); z++ {
				if m := grid.At(well.Coord{X: x, Y: y, Z: z}); m.Occupied() {
					vector.DrawFilledRect(screen, px, py, sideCell, sideCell, materialColor(m), false)
					break
				}
			}
			vector.StrokeRect(screen, px, py, sideCell, sideCell, 1, gridColor, false)
		}
	}
	if active == nil {
		return
	}
	for _, c := range active.Cells() {
		if c.Y >= grid.Height() {
			continue
		}
		px := left + float32(c.X*sideCell)
		py := bottom - float32((c.Y+1)*sideCell)
		vector.StrokeRect(screen, px, py, sideCell, sideCell, 2, activeEdge, false)
	}
}

func materialColor(m well.Material) color.RGBA {
	r, g, b, _ := m.RGBA()
	return color.RGBA{r, g, b, 255}
}

// shade darkens deep columns so height reads from above.
func shade(m well.Material, height, maxHeight int) color.RGBA {
	c := materialColor(m)
	f := 0.35 + 0.65*float32(height)/float32(maxHeight)
	return color.RGBA{uint8(float32(c.R) * f), uint8(float32(c.G) * f), uint8(float32(c.B) * f), 255}
}
