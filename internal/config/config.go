package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a JSON- and YAML-friendly wrapper around time.Duration that
// accepts human readable strings such as "16ms" in configuration files while
// still allowing numeric representations when necessary.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration using the canonical string representation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration from either a string (e.g. "250ms") or a
// numeric value representing nanoseconds. Empty strings and null values decode
// to zero.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("duration: empty value")
	}
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("duration: decode string: %w", err)
		}
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = Duration(time.Duration(f))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", string(b))
}

// UnmarshalYAML decodes a duration from a scalar YAML node using the same
// rules as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		return d.parse(s)
	}
	return fmt.Errorf("duration: invalid value %q", node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters needed to bootstrap a voxel world
// simulation.
type Config struct {
	Sim     SimConfig     `json:"sim" yaml:"sim"`
	World   WorldConfig   `json:"world" yaml:"world"`
	Terrain TerrainConfig `json:"terrain" yaml:"terrain"`
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Preview PreviewConfig `json:"preview" yaml:"preview"`
}

type SimConfig struct {
	TickRate     Duration `json:"tickRate" yaml:"tickRate"`         // e.g. "16ms"
	StatInterval Duration `json:"statInterval" yaml:"statInterval"` // diagnostics log cadence
	MoveSpeed    float64  `json:"moveSpeed" yaml:"moveSpeed"`       // observer walk speed, blocks/s
	JumpSpeed    float64  `json:"jumpSpeed" yaml:"jumpSpeed"`       // initial vertical speed on jump
}

type WorldConfig struct {
	ChunkSize      int `json:"chunkSize" yaml:"chunkSize"`           // horizontal footprint in blocks
	WorldHeight    int `json:"worldHeight" yaml:"worldHeight"`       // full vertical span in blocks
	SeaLevel       int `json:"seaLevel" yaml:"seaLevel"`             // baseline surface height
	RenderDistance int `json:"renderDistance" yaml:"renderDistance"` // chunk radius kept loaded
	UnloadPadding  int `json:"unloadPadding" yaml:"unloadPadding"`   // hysteresis band beyond render distance
}

type TerrainConfig struct {
	Seed      int64 `json:"seed" yaml:"seed"`
	MinHeight int   `json:"minHeight" yaml:"minHeight"`
	MaxHeight int   `json:"maxHeight" yaml:"maxHeight"`
	Workers   int   `json:"workers" yaml:"workers"` // column fill workers, 0 = automatic
}

type PhysicsConfig struct {
	Gravity      float64 `json:"gravity" yaml:"gravity"`           // blocks/s^2, applied downward
	PlayerRadius float64 `json:"playerRadius" yaml:"playerRadius"` // body half extent on X/Z
	PlayerHeight float64 `json:"playerHeight" yaml:"playerHeight"` // body height in blocks
}

type PreviewConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	OutputDir string `json:"outputDir" yaml:"outputDir"`
}

// Load reads configuration from a JSON or YAML file depending on extension.
// An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:     Duration(16 * time.Millisecond),
			StatInterval: Duration(2 * time.Second),
			MoveSpeed:    4.5,
			JumpSpeed:    8.0,
		},
		World: WorldConfig{
			ChunkSize:      16,
			WorldHeight:    128,
			SeaLevel:       32,
			RenderDistance: 3,
			UnloadPadding:  2,
		},
		Terrain: TerrainConfig{
			Seed:      12345,
			MinHeight: 1,
			MaxHeight: 120,
			Workers:   0,
		},
		Physics: PhysicsConfig{
			Gravity:      24.0,
			PlayerRadius: 0.3,
			PlayerHeight: 1.8,
		},
		Preview: PreviewConfig{
			Enabled:   false,
			OutputDir: "chunk-preview",
		},
	}
}

func (c *Config) Validate() error {
	if c.World.ChunkSize <= 0 || c.World.WorldHeight <= 0 {
		return errors.New("world dimensions must be positive")
	}
	if c.World.SeaLevel < 0 || c.World.SeaLevel >= c.World.WorldHeight {
		return errors.New("world.seaLevel must be within world height")
	}
	if c.World.RenderDistance < 0 {
		return errors.New("world.renderDistance cannot be negative")
	}
	if c.World.UnloadPadding < 0 {
		return errors.New("world.unloadPadding cannot be negative")
	}
	if c.Terrain.MinHeight < 0 || c.Terrain.MaxHeight >= c.World.WorldHeight {
		return errors.New("terrain height bounds must fit world height")
	}
	if c.Terrain.MinHeight > c.Terrain.MaxHeight {
		return errors.New("terrain.minHeight must be <= terrain.maxHeight")
	}
	if c.Terrain.Workers < 0 {
		return errors.New("terrain.workers cannot be negative")
	}
	if c.Physics.Gravity < 0 {
		return errors.New("physics.gravity cannot be negative")
	}
	if c.Physics.PlayerRadius <= 0 || c.Physics.PlayerHeight <= 0 {
		return errors.New("physics body extents must be positive")
	}
	if c.Physics.PlayerRadius >= 0.5 {
		return errors.New("physics.playerRadius must be under half a block")
	}
	if c.Sim.MoveSpeed < 0 {
		return errors.New("sim.moveSpeed cannot be negative")
	}
	return nil
}
