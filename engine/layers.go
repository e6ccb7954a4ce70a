package engine

import "go.uber.org/zap"

// clearLayers removes every full layer and books the score, HP damage and
// level progression for them.
func (g *Game) clearLayers() int {
	s := g.session
	cleared := len(s.Well.ClearFullLayers())
	if cleared == 0 {
		return 0
	}

	before := s.LayersCleared
	s.Score += cleared * g.rules.PointsPerLayer
	s.LayersCleared += cleared
	if s.Mode == ModeStory {
		s.OpponentHP = max(0, s.OpponentHP-cleared*g.rules.DamagePerLayer)
	}
	g.emit(Event{Kind: EventLayersCleared, Count: cleared})

	for range levelUps(g.rules.LevelPolicy, before, s.LayersCleared, g.rules.LayersPerLevel) {
		s.Level++
		s.FallingSpeed += g.rules.SpeedIncrement
		g.emit(Event{Kind: EventLevelUp, Level: s.Level})
		g.logger.Debug("level up", zap.Int("level", s.Level), zap.Float64("falling_speed", s.FallingSpeed))
	}

	g.checkWin()
	return cleared
}

// levelUps returns how many levels a clearing pass that moved the running
// total from before to after is worth.
func levelUps(policy LevelPolicy, before, after, perLevel int) int {
	if after <= before {
		return 0
	}
	switch policy {
	case LevelPerBatch:
		if after%perLevel == 0 {
			return 1
		}
		return 0
	default:
		return after/perLevel - before/perLevel
	}
}
