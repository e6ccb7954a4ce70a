package well_test

import (
	"testing"

	"github.com/plus3/welltris/well"
	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	red := well.NewMaterial(0xff0000)

	t.Run("bounds", func(t *testing.T) {
		g := well.New(6, 12, 6)
		x, y, z := g.Size()
		assert.Equal(t, []int{6, 12, 6}, []int{x, y, z})

		assert.True(t, g.InBounds(well.Coord{X: 0, Y: 0, Z: 0}))
		assert.True(t, g.InBounds(well.Coord{X: 5, Y: 11, Z: 5}))
		assert.False(t, g.InBounds(well.Coord{X: 6, Y: 0, Z: 0}))
		assert.False(t, g.InBounds(well.Coord{X: 0, Y: -1, Z: 0}))
		assert.False(t, g.InBounds(well.Coord{X: 0, Y: 12, Z: 0}))

		assert.True(t, g.IsOccupied(well.Coord{X: -1, Y: 0, Z: 0}), "outside the grid counts as occupied")
		assert.False(t, g.IsOccupied(well.Coord{X: 1, Y: 1, Z: 1}))
		assert.False(t, g.Set(well.Coord{X: 0, Y: 12, Z: 0}, red))
		assert.Equal(t, well.Empty, g.At(well.Coord{X: 0, Y: 12, Z: 0}))
	})

	t.Run("set and clear", func(t *testing.T) {
		g := well.New(3, 3, 3)
		c := well.Coord{X: 1, Y: 2, Z: 0}

		assert.True(t, g.Set(c, red))
		assert.True(t, g.IsOccupied(c))
		assert.Equal(t, red, g.At(c))
		assert.Equal(t, 1, g.Count())
		assert.Equal(t, 1, g.LayerCount(2))

		assert.True(t, g.Clear(c))
		assert.False(t, g.Clear(c))
		assert.Equal(t, 0, g.Count())
	})

	t.Run("clone is independent", func(t *testing.T) {
		g := well.New(2, 2, 2)
		g.FillLayer(0, red)
		clone := g.Clone()
		g.Reset()

		assert.Equal(t, 0, g.Count())
		assert.Equal(t, 4, clone.Count())
		assert.True(t, clone.LayerFull(0))
	})

	t.Run("cells and heights", func(t *testing.T) {
		g := well.New(2, 4, 2)
		g.Set(well.Coord{X: 1, Y: 0, Z: 0}, red)
		g.Set(well.Coord{X: 1, Y: 3, Z: 0}, red)
		g.Set(well.Coord{X: 0, Y: 1, Z: 1}, red)

		var got []well.Coord
		for c, m := range g.Cells() {
			assert.Equal(t, red, m)
			got = append(got, c)
		}
		assert.Equal(t, []well.Coord{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 3, Z: 0}}, got)
		assert.Equal(t, [][]int{{0, 4}, {2, 0}}, g.Heights())
	})

	t.Run("invalid dimensions panic", func(t *testing.T) {
		assert.Panics(t, func() { well.New(0, 1, 1) })
	})

	t.Run("parse layer errors", func(t *testing.T) {
		g := well.New(2, 2, 2)
		assert.Error(t, g.ParseLayer(2, "##", red))
		assert.Error(t, g.ParseLayer(0, "###", red))
		assert.Error(t, g.ParseLayer(0, "##\n##\n##", red))
		assert.Error(t, g.ParseLayer(0, "#x", red))
	})
}

func TestMaterial(t *testing.T) {
	m := well.NewMaterial(0x12345678)
	assert.Equal(t, uint32(0x345678), m.RGB())
	r, g, b, a := m.RGBA()
	assert.Equal(t, []uint8{0x34, 0x56, 0x78, 0xff}, []uint8{r, g, b, a})
	assert.True(t, m.Occupied())
	assert.Equal(t, "#345678", m.String())
	assert.Equal(t, "empty", well.Empty.String())
	assert.True(t, well.NewMaterial(0).Occupied(), "black is still a material")
}

func TestLayersDump(t *testing.T) {
	g := well.New(3, 3, 2)
	red := well.NewMaterial(0xff0000)
	g.Set(well.Coord{X: 0, Y: 0, Z: 0}, red)
	g.Set(well.Coord{X: 2, Y: 0, Z: 1}, red)
	g.Set(well.Coord{X: 1, Y: 2, Z: 1}, red)

	assert.Equal(t, []string{"#..\n..#\n", "...\n...\n", "...\n.#.\n"}, g.Layers())
	assert.Equal(t, "y=2\n...\n.#.\ny=0\n#..\n..#\n", g.String())
}
