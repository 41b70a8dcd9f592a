package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "non positive chunk size",
			mutate: func(cfg *Config) {
				cfg.World.ChunkSize = 0
			},
			wantErr: "world dimensions must be positive",
		},
		{
			name: "non positive world height",
			mutate: func(cfg *Config) {
				cfg.World.WorldHeight = 0
			},
			wantErr: "world dimensions must be positive",
		},
		{
			name: "sea level above world height",
			mutate: func(cfg *Config) {
				cfg.World.SeaLevel = cfg.World.WorldHeight
			},
			wantErr: "world.seaLevel must be within world height",
		},
		{
			name: "negative render distance",
			mutate: func(cfg *Config) {
				cfg.World.RenderDistance = -1
			},
			wantErr: "world.renderDistance cannot be negative",
		},
		{
			name: "negative unload padding",
			mutate: func(cfg *Config) {
				cfg.World.UnloadPadding = -1
			},
			wantErr: "world.unloadPadding cannot be negative",
		},
		{
			name: "terrain bounds exceed world height",
			mutate: func(cfg *Config) {
				cfg.Terrain.MaxHeight = cfg.World.WorldHeight
			},
			wantErr: "terrain height bounds must fit world height",
		},
		{
			name: "inverted terrain bounds",
			mutate: func(cfg *Config) {
				cfg.Terrain.MinHeight = cfg.Terrain.MaxHeight + 1
			},
			wantErr: "terrain.minHeight must be <= terrain.maxHeight",
		},
		{
			name: "negative terrain workers",
			mutate: func(cfg *Config) {
				cfg.Terrain.Workers = -1
			},
			wantErr: "terrain.workers cannot be negative",
		},
		{
			name: "negative gravity",
			mutate: func(cfg *Config) {
				cfg.Physics.Gravity = -1
			},
			wantErr: "physics.gravity cannot be negative",
		},
		{
			name: "zero body radius",
			mutate: func(cfg *Config) {
				cfg.Physics.PlayerRadius = 0
			},
			wantErr: "physics body extents must be positive",
		},
		{
			name: "oversized body radius",
			mutate: func(cfg *Config) {
				cfg.Physics.PlayerRadius = 0.5
			},
			wantErr: "physics.playerRadius must be under half a block",
		},
		{
			name: "negative move speed",
			mutate: func(cfg *Config) {
				cfg.Sim.MoveSpeed = -1
			},
			wantErr: "sim.moveSpeed cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("unexpected error: got %q want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if want := Default(); !reflect.DeepEqual(cfg, want) {
		t.Fatalf("default configuration mismatch:\nwant: %#v\n got: %#v", want, cfg)
	}
}

func TestLoadReadsJSONFileAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Terrain.Seed = 9001
	cfg.World.RenderDistance = 5

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("loaded configuration mismatch:\nwant: %#v\n got: %#v", cfg, got)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	doc := `
sim:
  tickRate: 20ms
  statInterval: 5s
world:
  renderDistance: 4
terrain:
  seed: 777
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got.Sim.TickRate.Duration() != 20*time.Millisecond {
		t.Fatalf("tickRate = %v, want 20ms", got.Sim.TickRate.Duration())
	}
	if got.Sim.StatInterval.Duration() != 5*time.Second {
		t.Fatalf("statInterval = %v, want 5s", got.Sim.StatInterval.Duration())
	}
	if got.World.RenderDistance != 4 {
		t.Fatalf("renderDistance = %d, want 4", got.World.RenderDistance)
	}
	if got.Terrain.Seed != 777 {
		t.Fatalf("seed = %d, want 777", got.Terrain.Seed)
	}
	// Fields absent from the document keep their defaults.
	if got.World.ChunkSize != Default().World.ChunkSize {
		t.Fatalf("chunkSize = %d, want default", got.World.ChunkSize)
	}
}

func TestLoadInvalidConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.World.ChunkSize = 0

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Fatalf("expected load to fail")
	}
	if !strings.Contains(err.Error(), "validate config: world dimensions must be positive") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDurationDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
		fails bool
	}{
		{name: "string", input: `"250ms"`, want: 250 * time.Millisecond},
		{name: "nanoseconds", input: `16000000`, want: 16 * time.Millisecond},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "garbage", input: `"not-a-duration"`, fails: true},
		{name: "object", input: `{}`, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.fails {
				if err == nil {
					t.Fatalf("expected decode of %s to fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode %s: %v", tt.input, err)
			}
			if d.Duration() != tt.want {
				t.Fatalf("decoded %v, want %v", d.Duration(), tt.want)
			}
		})
	}
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration(16 * time.Millisecond)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal duration: %v", err)
	}
	var back Duration
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal duration: %v", err)
	}
	if back != d {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}
