package engine_test

import (
	"math"
	"testing"

	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/piece"
	"github.com/stretchr/testify/assert"
)

func TestRotationScheduler(t *testing.T) {
	t.Run("zero delta is refused", func(t *testing.T) {
		r := engine.NewRotationScheduler(math.Pi/20, 60, 0.01)
		assert.False(t, r.Request(piece.Euler{}, piece.Euler{}))
		assert.True(t, r.Ready())
		assert.Equal(t, 0, r.Cooldown())
	})

	t.Run("steps then snaps", func(t *testing.T) {
		r := engine.NewRotationScheduler(math.Pi/20, 60, 0.01)
		p := piece.New(piece.T, 0)
		assert.True(t, r.Ready())

		assert.True(t, r.Request(p.Rotation, piece.QuarterXNeg))
		assert.False(t, r.Ready())
		assert.Equal(t, 1, r.Pending())

		steps := 0
		for !r.Advance(&p) {
			steps++
			assert.Less(t, steps, 20)
		}
		assert.Equal(t, 9, steps)
		assert.Equal(t, piece.Euler{X: -math.Pi / 2}, p.Rotation)
		assert.False(t, r.Advance(&p), "nothing left to animate")
	})

	t.Run("cooldown", func(t *testing.T) {
		r := engine.NewRotationScheduler(math.Pi/20, 3, 0.01)
		p := piece.New(piece.I, 0)
		r.Request(p.Rotation, piece.QuarterYPos)
		r.Finish(&p)
		assert.Equal(t, piece.QuarterYPos, p.Rotation)

		assert.False(t, r.Request(p.Rotation, piece.QuarterYPos), "cooldown still running")
		assert.True(t, r.TickCooldown())
		assert.True(t, r.TickCooldown())
		assert.True(t, r.TickCooldown())
		assert.False(t, r.TickCooldown())
		assert.True(t, r.Ready())
	})

	t.Run("uneven deltas do not overshoot", func(t *testing.T) {
		r := engine.NewRotationScheduler(0.4, 0, 0.01)
		p := piece.New(piece.S, 0)
		r.Request(p.Rotation, piece.Euler{Z: 1})

		for !r.Advance(&p) {
		}
		assert.Equal(t, piece.Euler{Z: math.Pi / 2}, p.Rotation)
	})

	t.Run("reset", func(t *testing.T) {
		r := engine.NewRotationScheduler(math.Pi/20, 60, 0.01)
		r.Request(piece.Euler{}, piece.QuarterZPos)
		r.Reset()
		assert.True(t, r.Ready())
		assert.Equal(t, 0, r.Pending())
	})
}
