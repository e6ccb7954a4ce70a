package engine

import (
	"testing"

	"github.com/plus3/welltris/well"
	"github.com/stretchr/testify/assert"
)

func TestLevelUps(t *testing.T) {
	tests := []struct {
		name          string
		policy        LevelPolicy
		before, after int
		want          int
	}{
		{"per-layer first level", LevelPerLayer, 0, 5, 1},
		{"per-layer straddling batch", LevelPerLayer, 4, 6, 1},
		{"per-layer below threshold", LevelPerLayer, 3, 4, 0},
		{"per-layer two levels at once", LevelPerLayer, 0, 10, 2},
		{"per-layer no change", LevelPerLayer, 5, 5, 0},
		{"per-batch on a multiple", LevelPerBatch, 4, 5, 1},
		{"per-batch straddling skips", LevelPerBatch, 4, 6, 0},
		{"per-batch caps at one", LevelPerBatch, 0, 10, 1},
		{"per-batch no change", LevelPerBatch, 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelUps(tt.policy, tt.before, tt.after, 5))
		})
	}
}

func TestClearLayers(t *testing.T) {
	stone := well.NewMaterial(0x444444)

	t.Run("idempotent without full layers", func(t *testing.T) {
		g, err := NewGame(DefaultRules(), WithSeed(5))
		assert.NoError(t, err)
		assert.NoError(t, g.Start(ModeArcade, nil))
		g.session.Well.FillLayer(0, stone)
		g.session.Well.Clear(well.Coord{X: 1, Y: 0, Z: 1})
		before := g.session.Well.Clone()

		assert.Equal(t, 0, g.clearLayers())
		assert.Equal(t, 0, g.clearLayers())
		assert.Equal(t, before.String(), g.session.Well.String())
		assert.Equal(t, 0, g.session.Score)
		assert.Equal(t, 0, g.session.LayersCleared)
	})

	t.Run("level up raises the falling speed", func(t *testing.T) {
		g, err := NewGame(DefaultRules(), WithSeed(5))
		assert.NoError(t, err)
		assert.NoError(t, g.Start(ModeArcade, nil))
		g.session.LayersCleared = 4
		g.session.Well.FillLayer(0, stone)

		assert.Equal(t, 1, g.clearLayers())
		assert.Equal(t, 2, g.session.Level)
		assert.InDelta(t, 0.007, g.session.FallingSpeed, 1e-12)
		assert.Equal(t, 100, g.session.Score)
	})

	t.Run("per-batch policy", func(t *testing.T) {
		rules := DefaultRules()
		rules.LevelPolicy = LevelPerBatch
		g, err := NewGame(rules, WithSeed(5))
		assert.NoError(t, err)
		assert.NoError(t, g.Start(ModeArcade, nil))
		g.session.LayersCleared = 4
		g.session.Well.FillLayer(0, stone)
		g.session.Well.FillLayer(1, stone)

		assert.Equal(t, 2, g.clearLayers())
		assert.Equal(t, 1, g.session.Level)
		assert.Equal(t, 6, g.session.LayersCleared)
		assert.Equal(t, 200, g.session.Score)
	})

	t.Run("arcade ignores opponent hp", func(t *testing.T) {
		g, err := NewGame(DefaultRules(), WithSeed(5))
		assert.NoError(t, err)
		assert.NoError(t, g.Start(ModeArcade, nil))
		g.session.Well.FillLayer(0, stone)

		g.clearLayers()
		assert.Equal(t, 0, g.session.OpponentHP)
		assert.False(t, g.session.GameOver)
	})
}
