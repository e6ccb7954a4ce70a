package engine_test

import (
	"testing"

	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/well"
	"github.com/stretchr/testify/assert"
)

func TestCollision(t *testing.T) {
	m := well.NewMaterial(0x00ffff)

	t.Run("floor", func(t *testing.T) {
		g := well.New(6, 12, 6)
		p := piece.New(piece.O, m).Translated(piece.Vec3{X: 2, Y: 0, Z: 2})
		assert.True(t, engine.DetectFallCollision(g, p))
		assert.False(t, engine.DetectFallCollision(g, p.Translated(piece.Vec3{Y: 1})))
	})

	t.Run("resting on blocks", func(t *testing.T) {
		g := well.New(6, 12, 6)
		g.Set(well.Coord{X: 3, Y: 4, Z: 2}, m)
		p := piece.New(piece.O, m).Translated(piece.Vec3{X: 2, Y: 5, Z: 2})
		assert.True(t, engine.DetectFallCollision(g, p))
	})

	t.Run("above the ceiling is free", func(t *testing.T) {
		g := well.New(6, 12, 6)
		p := piece.New(piece.Bomb, m).Translated(piece.Vec3{X: 2, Y: 14, Z: 2})
		assert.False(t, engine.DetectFallCollision(g, p))
		assert.True(t, engine.CheckMovementCollision(g, p))
	})

	t.Run("walls", func(t *testing.T) {
		g := well.New(6, 12, 6)
		p := piece.New(piece.I, m).Translated(piece.Vec3{X: 1, Y: 5, Z: 0})
		assert.False(t, engine.CheckMovementCollision(g, p))
		assert.True(t, engine.CheckMovementCollision(g, p.Translated(piece.Vec3{X: -1})))
		assert.True(t, engine.CheckMovementCollision(g, p.Translated(piece.Vec3{Z: -1})))
		assert.True(t, engine.CanRotate(g, p, piece.QuarterXPos))
		assert.False(t, engine.CanRotate(g, p, piece.QuarterYPos))
	})

	t.Run("place validates before writing", func(t *testing.T) {
		g := well.New(6, 12, 6)
		g.Set(well.Coord{X: 3, Y: 0, Z: 2}, m)
		p := piece.New(piece.O, m).Translated(piece.Vec3{X: 2, Y: 0, Z: 3})

		err := engine.Place(g, p)
		assert.ErrorIs(t, err, engine.ErrTopOut)
		assert.Equal(t, 1, g.Count())

		assert.NoError(t, engine.Place(g, p.Translated(piece.Vec3{Y: 1})))
		assert.Equal(t, 5, g.Count())
	})

	t.Run("place above the ceiling", func(t *testing.T) {
		g := well.New(6, 12, 6)
		p := piece.New(piece.O, m).Translated(piece.Vec3{X: 2, Y: 12, Z: 2})
		assert.ErrorIs(t, engine.Place(g, p), engine.ErrTopOut)
		assert.Equal(t, 0, g.Count())
	})

	t.Run("project", func(t *testing.T) {
		g := well.New(6, 12, 6)
		g.FillLayer(0, m)
		g.FillLayer(1, m)
		p := piece.New(piece.T, m).Translated(piece.Vec3{X: 2, Y: 9.3, Z: 2})
		landed := engine.Project(g, p)
		for _, c := range landed.Cells() {
			assert.Equal(t, 2, c.Y)
		}
	})
}
