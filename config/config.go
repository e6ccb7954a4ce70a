package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/story"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Seed    uint64          `yaml:"seed"`
	Well    WellConfig      `yaml:"well"`
	Timing  TimingConfig    `yaml:"timing"`
	Scoring ScoringConfig   `yaml:"scoring"`
	Bomb    BombConfig      `yaml:"bomb"`
	Story   []story.Segment `yaml:"story"`
	Storage StorageConfig   `yaml:"storage"`
	Remote  RemoteConfig    `yaml:"remote"`
	Log     LogConfig       `yaml:"log"`
}

type WellConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`
}

type TimingConfig struct {
	TickRate           Duration `yaml:"tick_rate"`
	BaseFallingSpeed   float64  `yaml:"base_falling_speed"`
	SpeedIncrement     *float64 `yaml:"speed_increment"`
	FastDropMultiplier float64  `yaml:"fast_drop_multiplier"`
	RotationStep       float64  `yaml:"rotation_step"`
	RotationCooldown   *int     `yaml:"rotation_cooldown"`
	SnapEpsilon        float64  `yaml:"snap_epsilon"`
}

type ScoringConfig struct {
	PointsPerLayer int    `yaml:"points_per_layer"`
	LayersPerLevel int    `yaml:"layers_per_level"`
	LevelPolicy    string `yaml:"level_policy"`
	DamagePerLayer int    `yaml:"damage_per_layer"`
}

// Fields where zero is a meaningful setting are pointers; nil means unset.
type BombConfig struct {
	Range  *int     `yaml:"range"`
	Unlock *int     `yaml:"unlock"`
	Chance *float64 `yaml:"chance"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type RemoteConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ListenAddress  string `yaml:"listen_address"`
	PublicURL      string `yaml:"public_url"`
	BroadcastEvery int    `yaml:"broadcast_every"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a configuration with every field set.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fills unset fields with defaults and rejects values the game
// cannot run with.
func (c *Config) Validate() error {
	rules := engine.DefaultRules()

	if c.Well.Width == 0 {
		c.Well.Width = rules.Width
	}
	if c.Well.Height == 0 {
		c.Well.Height = rules.Height
	}
	if c.Well.Depth == 0 {
		c.Well.Depth = rules.Depth
	}
	if c.Well.Width < 0 || c.Well.Height < 2 || c.Well.Depth < 0 {
		return fmt.Errorf("well dimensions must be positive with a height of at least 2")
	}

	if c.Timing.TickRate == 0 {
		c.Timing.TickRate = Duration(time.Second / 60)
	}
	if c.Timing.TickRate < 0 {
		return fmt.Errorf("timing.tick_rate must be positive")
	}
	setDefault(&c.Timing.BaseFallingSpeed, rules.BaseFallingSpeed)
	setDefault(&c.Timing.FastDropMultiplier, rules.FastDropMultiplier)
	setDefault(&c.Timing.RotationStep, rules.RotationStep)
	setDefault(&c.Timing.SnapEpsilon, rules.SnapEpsilon)
	setUnset(&c.Timing.SpeedIncrement, rules.SpeedIncrement)
	setUnset(&c.Timing.RotationCooldown, rules.RotationCooldown)
	if c.Timing.BaseFallingSpeed < 0 || *c.Timing.SpeedIncrement < 0 {
		return fmt.Errorf("timing speeds cannot be negative")
	}
	if c.Timing.FastDropMultiplier < 1 {
		return fmt.Errorf("timing.fast_drop_multiplier must be at least 1")
	}
	if c.Timing.RotationStep > math.Pi/2 {
		return fmt.Errorf("timing.rotation_step cannot exceed a quarter turn")
	}
	if *c.Timing.RotationCooldown < 0 {
		return fmt.Errorf("timing.rotation_cooldown cannot be negative")
	}

	if c.Scoring.PointsPerLayer == 0 {
		c.Scoring.PointsPerLayer = rules.PointsPerLayer
	}
	if c.Scoring.LayersPerLevel == 0 {
		c.Scoring.LayersPerLevel = rules.LayersPerLevel
	}
	if c.Scoring.DamagePerLayer == 0 {
		c.Scoring.DamagePerLayer = rules.DamagePerLayer
	}
	if c.Scoring.LevelPolicy == "" {
		c.Scoring.LevelPolicy = rules.LevelPolicy.String()
	}
	if _, err := engine.ParseLevelPolicy(c.Scoring.LevelPolicy); err != nil {
		return fmt.Errorf("scoring.level_policy invalid: %w", err)
	}

	setUnset(&c.Bomb.Range, rules.BombRange)
	setUnset(&c.Bomb.Unlock, rules.BombUnlock)
	setUnset(&c.Bomb.Chance, rules.BombChance)
	if *c.Bomb.Range < 0 || *c.Bomb.Unlock < 0 {
		return fmt.Errorf("bomb.range and bomb.unlock cannot be negative")
	}
	if *c.Bomb.Chance < 0 || *c.Bomb.Chance > 1 {
		return fmt.Errorf("bomb.chance must be within [0,1]")
	}

	if len(c.Story) == 0 {
		c.Story = story.DefaultSegments()
	}
	if err := story.Validate(c.Story); err != nil {
		return fmt.Errorf("story invalid: %w", err)
	}

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = "sqlite"
	case "sqlite", "memory":
	default:
		return fmt.Errorf("storage.driver %q must be sqlite or memory", c.Storage.Driver)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		c.Storage.Path = "welltris.db"
	}

	if c.Remote.ListenAddress == "" {
		c.Remote.ListenAddress = "127.0.0.1:28090"
	}
	if c.Remote.BroadcastEvery <= 0 {
		c.Remote.BroadcastEvery = 6
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level invalid: %w", err)
	}

	return c.Rules().Validate()
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func setUnset[T any](v **T, def T) {
	if *v == nil {
		*v = &def
	}
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// TickInterval is the wall-clock length of one simulation tick.
func (c *Config) TickInterval() time.Duration {
	if c.Timing.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Duration(c.Timing.TickRate)
}

// Rules converts the gameplay sections into engine rules.
func (c *Config) Rules() engine.Rules {
	policy, _ := engine.ParseLevelPolicy(c.Scoring.LevelPolicy)
	def := engine.DefaultRules()
	return engine.Rules{
		Width:              c.Well.Width,
		Height:             c.Well.Height,
		Depth:              c.Well.Depth,
		BaseFallingSpeed:   c.Timing.BaseFallingSpeed,
		SpeedIncrement:     valueOr(c.Timing.SpeedIncrement, def.SpeedIncrement),
		FastDropMultiplier: c.Timing.FastDropMultiplier,
		RotationStep:       c.Timing.RotationStep,
		RotationCooldown:   valueOr(c.Timing.RotationCooldown, def.RotationCooldown),
		SnapEpsilon:        c.Timing.SnapEpsilon,
		PointsPerLayer:     c.Scoring.PointsPerLayer,
		LayersPerLevel:     c.Scoring.LayersPerLevel,
		LevelPolicy:        policy,
		DamagePerLayer:     c.Scoring.DamagePerLayer,
		BombRange:          valueOr(c.Bomb.Range, def.BombRange),
		BombUnlock:         valueOr(c.Bomb.Unlock, def.BombUnlock),
		BombChance:         valueOr(c.Bomb.Chance, def.BombChance),
		TickSeconds:        c.TickInterval().Seconds(),
	}
}

// NewLogger builds the process logger described by the log section.
func (l LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
