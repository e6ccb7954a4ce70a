package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/welltris/engine"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	want := engine.DefaultRules()
	got := cfg.Rules()
	assert.InDelta(t, want.TickSeconds, got.TickSeconds, 1e-5)
	want.TickSeconds = got.TickSeconds
	assert.Equal(t, want, got)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "welltris.db", cfg.Storage.Path)
	assert.Equal(t, 6, cfg.Remote.BroadcastEvery)
	assert.Len(t, cfg.Story, 4)
	assert.Equal(t, "per-layer", cfg.Scoring.LevelPolicy)
}

func TestLoadReadsYAMLAndValidates(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "welltris.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	rules := cfg.Rules()
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, []int{5, 10, 5}, []int{rules.Width, rules.Height, rules.Depth})
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 30, rules.RotationCooldown)
	assert.Equal(t, engine.LevelPerBatch, rules.LevelPolicy)
	assert.Equal(t, 20, rules.DamagePerLayer)
	assert.Equal(t, 0.0, rules.BombChance, "an explicit zero chance is kept")
	assert.Equal(t, 8, rules.BombUnlock)
	assert.Equal(t, math.Pi/20, rules.RotationStep)
	assert.Len(t, cfg.Story, 2)
	assert.Equal(t, 40, cfg.Story[0].OpponentHP)
	assert.True(t, cfg.Story[1].Epilogue())
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "", cfg.Storage.Path)
	assert.True(t, cfg.Remote.Enabled)
	assert.Equal(t, "127.0.0.1:28090", cfg.Remote.ListenAddress)

	logger, err := cfg.Log.NewLogger()
	assert.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsInvalidConfigurations(t *testing.T) {
	tests := map[string]string{
		"bad tick rate":      "timing:\n  tick_rate: soon\n",
		"negative tick rate": "timing:\n  tick_rate: -1s\n",
		"short well":         "well:\n  height: 1\n",
		"unknown policy":     "scoring:\n  level_policy: per-tick\n",
		"chance above one":   "bomb:\n  chance: 1.5\n",
		"unknown driver":     "storage:\n  driver: redis\n",
		"bad log level":      "log:\n  level: loud\n",
		"story without time": "story:\n  - lines: [\"hi\"]\n    opponent_hp: 10\n",
		"slow fast drop":     "timing:\n  fast_drop_multiplier: 0.5\n",
		"huge rotation step": "timing:\n  rotation_step: 3\n",
		"negative cooldown":  "timing:\n  rotation_cooldown: -1\n",
		"negative unlock":    "bomb:\n  unlock: -2\n",
		"malformed yaml":     "well: [\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("Load() = nil error, want error")
			}
		})
	}
}

func TestParseKeepsExplicitZeros(t *testing.T) {
	doc := "timing:\n  rotation_cooldown: 0\n  speed_increment: 0\nbomb:\n  unlock: 0\n  range: 0\n"
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	rules := cfg.Rules()
	assert.Equal(t, 0, rules.RotationCooldown)
	assert.Equal(t, 0.0, rules.SpeedIncrement)
	assert.Equal(t, 0, rules.BombUnlock)
	assert.Equal(t, 0, rules.BombRange)

	defaults := Default().Rules()
	assert.Equal(t, engine.DefaultRules().RotationCooldown, defaults.RotationCooldown)
	assert.Equal(t, engine.DefaultRules().BombUnlock, defaults.BombUnlock)
}

func TestDurationYAML(t *testing.T) {
	out, err := yaml.Marshal(TimingConfig{TickRate: Duration(20 * time.Millisecond)})
	assert.NoError(t, err)
	assert.Contains(t, string(out), "tick_rate: 20ms")

	var timing TimingConfig
	err = yaml.Unmarshal([]byte("tick_rate: 1m30s\n"), &timing)
	assert.NoError(t, err)
	assert.Equal(t, Duration(90*time.Second), timing.TickRate)

	err = yaml.Unmarshal([]byte("tick_rate: [1]\n"), &timing)
	assert.Error(t, err)
}
