package well_test

import (
	"testing"

	"github.com/plus3/welltris/well"
	"github.com/stretchr/testify/assert"
)

func TestExplode(t *testing.T) {
	stone := well.NewMaterial(0x888888)

	t.Run("clears exactly the surrounding cube", func(t *testing.T) {
		g := well.New(6, 12, 6)
		for y := range 8 {
			g.FillLayer(y, stone)
		}
		before := g.Count()

		removed := g.Explode(well.Coord{X: 3, Y: 5, Z: 3}, 2)

		assert.Len(t, removed, 27)
		assert.Equal(t, before-27, g.Count())
		for c := range g.Cells() {
			inBox := c.X >= 2 && c.X <= 4 && c.Z >= 2 && c.Z <= 4 && c.Y >= 4 && c.Y <= 6
			assert.False(t, inBox, "cell %v survived the blast", c)
		}
		for _, c := range removed {
			assert.False(t, g.IsOccupied(c))
		}
	})

	t.Run("clips at the walls", func(t *testing.T) {
		g := well.New(6, 12, 6)
		g.FillLayer(0, stone)
		g.FillLayer(1, stone)

		removed := g.Explode(well.Coord{X: 0, Y: 0, Z: 0}, 2)

		assert.Len(t, removed, 8)
		assert.Equal(t, 72-8, g.Count())
	})

	t.Run("only occupied cells are reported", func(t *testing.T) {
		g := well.New(4, 4, 4)
		g.Set(well.Coord{X: 1, Y: 1, Z: 1}, stone)
		g.Set(well.Coord{X: 3, Y: 3, Z: 3}, stone)

		removed := g.Explode(well.Coord{X: 1, Y: 1, Z: 1}, 2)

		assert.Equal(t, []well.Coord{{X: 1, Y: 1, Z: 1}}, removed)
		assert.Equal(t, 1, g.Count())
	})

	t.Run("zero reach is a no-op", func(t *testing.T) {
		g := well.New(2, 2, 2)
		g.FillLayer(0, stone)
		assert.Empty(t, g.Explode(well.Coord{}, 0))
		assert.Equal(t, 4, g.Count())
	})
}
