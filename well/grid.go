// Package well models the three-dimensional playfield as a dense occupancy
// grid. Cells are stored layer by layer so that whole-layer operations work
// on contiguous memory.
package well

import (
	"fmt"
	"iter"
	"strings"
)

// Grid is the well. Width runs along X, Height along Y and Depth along Z.
type Grid struct {
	width, height, depth int
	cells                []Material
}

// New allocates an empty well. It panics on non-positive dimensions.
func New(width, height, depth int) *Grid {
	if width <= 0 || height <= 0 || depth <= 0 {
		panic(fmt.Sprintf("well: invalid dimensions %dx%dx%d", width, height, depth))
	}
	return &Grid{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]Material, width*height*depth),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Depth() int  { return g.depth }

// Size returns the X, Y and Z extents.
func (g *Grid) Size() (x, y, z int) {
	return g.width, g.height, g.depth
}

func (g *Grid) layerSize() int {
	return g.width * g.depth
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.layerSize() + c.Z*g.width + c.X
}

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width &&
		c.Y >= 0 && c.Y < g.height &&
		c.Z >= 0 && c.Z < g.depth
}

// At returns the material at c, or Empty when c is out of range.
func (g *Grid) At(c Coord) Material {
	if !g.InBounds(c) {
		return Empty
	}
	return g.cells[g.index(c)]
}

// Set writes m at c and reports whether c was in range.
func (g *Grid) Set(c Coord, m Material) bool {
	if !g.InBounds(c) {
		return false
	}
	g.cells[g.index(c)] = m
	return true
}

// Clear empties c and reports whether it was occupied.
func (g *Grid) Clear(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	was := g.cells[i].Occupied()
	g.cells[i] = Empty
	return was
}

// IsOccupied treats every coordinate outside the grid as occupied.
func (g *Grid) IsOccupied(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.cells[g.index(c)].Occupied()
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, m := range g.cells {
		if m.Occupied() {
			n++
		}
	}
	return n
}

func (g *Grid) layer(y int) []Material {
	size := g.layerSize()
	return g.cells[y*size : (y+1)*size]
}

// LayerCount returns how many cells of layer y are occupied.
func (g *Grid) LayerCount(y int) int {
	if y < 0 || y >= g.height {
		return 0
	}
	n := 0
	for _, m := range g.layer(y) {
		if m.Occupied() {
			n++
		}
	}
	return n
}

// LayerFull reports whether every cell of layer y is occupied.
func (g *Grid) LayerFull(y int) bool {
	return g.LayerCount(y) == g.layerSize()
}

// FillLayer sets every cell of layer y to m.
func (g *Grid) FillLayer(y int, m Material) {
	if y < 0 || y >= g.height {
		return
	}
	layer := g.layer(y)
	for i := range layer {
		layer[i] = m
	}
}

// Reset empties the whole well.
func (g *Grid) Reset() {
	clear(g.cells)
}

func (g *Grid) Clone() *Grid {
	clone := &Grid{
		width:  g.width,
		height: g.height,
		depth:  g.depth,
		cells:  make([]Material, len(g.cells)),
	}
	copy(clone.cells, g.cells)
	return clone
}

// Cells yields every occupied cell, bottom layer first.
func (g *Grid) Cells() iter.Seq2[Coord, Material] {
	return func(yield func(Coord, Material) bool) {
		for y := 0; y < g.height; y++ {
			for z := 0; z < g.depth; z++ {
				for x := 0; x < g.width; x++ {
					c := Coord{X: x, Y: y, Z: z}
					m := g.cells[g.index(c)]
					if m.Occupied() && !yield(c, m) {
						return
					}
				}
			}
		}
	}
}

// Heights returns, for each (x, z) column, one more than the index of the
// highest occupied layer, or zero for an empty column. The result is indexed
// as [z][x].
func (g *Grid) Heights() [][]int {
	heights := make([][]int, g.depth)
	for z := range heights {
		heights[z] = make([]int, g.width)
	}
	for c := range g.Cells() {
		if c.Y+1 > heights[c.Z][c.X] {
			heights[c.Z][c.X] = c.Y + 1
		}
	}
	return heights
}

// Layers renders every layer bottom first, one row per Z, with '#' for
// occupied cells and '.' for empty ones.
func (g *Grid) Layers() []string {
	layers := make([]string, g.height)
	var b strings.Builder
	for y := range layers {
		b.Reset()
		for z := 0; z < g.depth; z++ {
			for x := 0; x < g.width; x++ {
				if g.At(Coord{X: x, Y: y, Z: z}).Occupied() {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			b.WriteByte('\n')
		}
		layers[y] = b.String()
	}
	return layers
}

// String renders the non-empty layers from the top down, each under a "y=N"
// header.
func (g *Grid) String() string {
	var b strings.Builder
	layers := g.Layers()
	for y := len(layers) - 1; y >= 0; y-- {
		if g.LayerCount(y) == 0 {
			continue
		}
		fmt.Fprintf(&b, "y=%d\n%s", y, layers[y])
	}
	return b.String()
}
