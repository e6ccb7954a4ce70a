package engine

import (
	"fmt"
	"math"

	"github.com/plus3/welltris/piece"
)

// LevelPolicy decides when cleared layers raise the level.
type LevelPolicy int

const (
	// LevelPerLayer awards one level for every LayersPerLevel layers cleared,
	// however they are grouped.
	LevelPerLayer LevelPolicy = iota
	// LevelPerBatch awards at most one level per clearing pass, and only when
	// the running total lands on a multiple of LayersPerLevel.
	LevelPerBatch
)

func (p LevelPolicy) String() string {
	switch p {
	case LevelPerLayer:
		return "per-layer"
	case LevelPerBatch:
		return "per-batch"
	default:
		return fmt.Sprintf("LevelPolicy(%d)", int(p))
	}
}

// ParseLevelPolicy is the inverse of LevelPolicy.String.
func ParseLevelPolicy(s string) (LevelPolicy, error) {
	switch s {
	case "per-layer", "":
		return LevelPerLayer, nil
	case "per-batch":
		return LevelPerBatch, nil
	default:
		return 0, fmt.Errorf("engine: unknown level policy %q", s)
	}
}

// Rules holds every gameplay tunable.
type Rules struct {
	Width, Height, Depth int

	// Falling speed in cells per tick.
	BaseFallingSpeed   float64
	SpeedIncrement     float64
	FastDropMultiplier float64

	// Rotation animation, in radians per tick.
	RotationStep     float64
	RotationCooldown int
	SnapEpsilon      float64

	PointsPerLayer int
	LayersPerLevel int
	LevelPolicy    LevelPolicy
	DamagePerLayer int

	BombRange  int
	BombUnlock int
	BombChance float64

	// Seconds of story clock consumed by one tick.
	TickSeconds float64
}

func DefaultRules() Rules {
	gen := piece.DefaultGeneratorConfig()
	return Rules{
		Width:              6,
		Height:             12,
		Depth:              6,
		BaseFallingSpeed:   0.005,
		SpeedIncrement:     0.002,
		FastDropMultiplier: 10,
		RotationStep:       math.Pi / 20,
		RotationCooldown:   60,
		SnapEpsilon:        0.01,
		PointsPerLayer:     100,
		LayersPerLevel:     5,
		LevelPolicy:        LevelPerLayer,
		DamagePerLayer:     25,
		BombRange:          2,
		BombUnlock:         gen.BombUnlock,
		BombChance:         gen.BombChance,
		TickSeconds:        1.0 / 60,
	}
}

// Validate rejects rule sets the engine cannot run.
func (r Rules) Validate() error {
	if r.Width <= 0 || r.Height < 2 || r.Depth <= 0 {
		return fmt.Errorf("engine: well %dx%dx%d is too small", r.Width, r.Height, r.Depth)
	}
	if r.BaseFallingSpeed <= 0 || r.FastDropMultiplier < 1 {
		return fmt.Errorf("engine: falling speed %v x%v must be positive", r.BaseFallingSpeed, r.FastDropMultiplier)
	}
	if r.RotationStep <= 0 || r.SnapEpsilon <= 0 {
		return fmt.Errorf("engine: rotation step and snap epsilon must be positive")
	}
	if r.RotationCooldown < 0 {
		return fmt.Errorf("engine: rotation cooldown %d is negative", r.RotationCooldown)
	}
	if r.LayersPerLevel <= 0 {
		return fmt.Errorf("engine: layers per level must be positive")
	}
	if r.BombChance < 0 || r.BombChance > 1 {
		return fmt.Errorf("engine: bomb chance %v outside [0,1]", r.BombChance)
	}
	if r.TickSeconds <= 0 {
		return fmt.Errorf("engine: tick length must be positive")
	}
	return nil
}

func (r Rules) generatorConfig() piece.GeneratorConfig {
	return piece.GeneratorConfig{BombUnlock: r.BombUnlock, BombChance: r.BombChance}
}

// spawnPosition is the pivot every new piece starts from.
func (r Rules) spawnPosition() piece.Vec3 {
	return piece.Vec3{
		X: float64(r.Width / 2),
		Y: float64(r.Height - 2),
		Z: float64(r.Depth / 2),
	}
}
