package piece

import (
	"math/rand/v2"

	"github.com/plus3/welltris/well"
)

// GeneratorConfig controls how the bomb enters the random draw.
type GeneratorConfig struct {
	// BombUnlock is the number of placed pieces after which the bomb may be
	// added to the pool.
	BombUnlock int
	// BombChance is the probability that the bomb joins the pool for a draw.
	BombChance float64
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{BombUnlock: 8, BombChance: 0.5}
}

// Generator draws upcoming pieces from a seeded source.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
	seed   uint64
}

func NewGenerator(seed uint64, config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed:   seed,
	}
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

// Next draws the piece that follows after placed pieces have been locked.
// Once the bomb is unlocked it joins the seven regular kinds with the
// configured probability and the draw is uniform over the resulting pool.
func (g *Generator) Next(placed int) Instance {
	pool := Regular()
	if placed >= g.config.BombUnlock && g.rng.Float64() < g.config.BombChance {
		pool = append(pool, Bomb)
	}

	kind := pool[g.rng.IntN(len(pool))]
	if kind == Bomb {
		return New(Bomb, well.NewMaterial(BombMaterialRGB))
	}
	return New(kind, well.NewMaterial(g.rng.Uint32N(0xffffff)))
}
