package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/gravity"
	"github.com/san-kum/ratgrav/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "earth_moon" {
		t.Errorf("expected earth_moon, got %s", cfg.Name)
	}
	if cfg.Ticks <= 0 {
		t.Error("ticks should be positive")
	}
	if len(cfg.Bodies) != 2 || cfg.Bodies[0].Name != "moon" {
		t.Errorf("expected moon first, got %+v", cfg.Bodies)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no bodies", func(c *Config) { c.Bodies = nil }, ErrNoBodies},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }, nil},
		{"bad policy", func(c *Config) { c.Policy = "eventually" }, gravity.ErrUnknownPolicy},
		{"duplicate names", func(c *Config) { c.Bodies[1].Name = "moon" }, ErrDuplicateName},
		{"empty name", func(c *Config) { c.Name = "" }, ErrInvalidName},
		{"parent dir", func(c *Config) { c.Name = "../outside" }, ErrInvalidName},
		{"nested dir", func(c *Config) { c.Name = "a/b" }, ErrInvalidName},
		{"backslash", func(c *Config) { c.Name = `a\b` }, ErrInvalidName},
		{"dot dot", func(c *Config) { c.Name = ".." }, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := GetPreset("binary")
	cfg.Ticks = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Ticks != 7 || loaded.Policy != "snapshot" || !loaded.G.Equal(exact.FromInt(1)) {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if len(loaded.Bodies) != 2 || loaded.Bodies[1].Position != [3]float64{1, 0.5, 0} {
		t.Errorf("bodies mismatch: %+v", loaded.Bodies)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("ticks: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ticks != 12 {
		t.Errorf("ticks = %d, want 12", cfg.Ticks)
	}
	if !cfg.G.Equal(gravity.DefaultG()) || len(cfg.Bodies) != 2 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("policy: whenever\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, gravity.ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildSystem(t *testing.T) {
	sys, err := DefaultConfig().BuildSystem()
	if err != nil {
		t.Fatal(err)
	}

	bodies := sys.Bodies()
	if len(bodies) != 2 || bodies[0].Name() != "moon" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
	if !sys.Config().G.Equal(exact.MustFromFloat(6.674e-11)) {
		t.Errorf("G = %s", sys.Config().G)
	}
	if bodies[0].Distance().Int64() != 362600000 {
		t.Errorf("moon distance = %s", bodies[0].Distance())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Bodies[0].Mass = 99

	if Presets["binary"].Bodies[0].Mass != 1 {
		t.Error("GetPreset returned shared state")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("ListPresets returned %d names", len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestLoad_ExactG(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"fraction", "g: 1/3\n", "1/3"},
		{"integer", "g: 2\n", "2"},
		{"decimal", "g: 6.674e-11\n", "3337/50000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "g.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if cfg.G.String() != tt.want {
				t.Errorf("g = %s, want %s", cfg.G, tt.want)
			}
			gcfg, err := cfg.GravityConfig()
			if err != nil {
				t.Fatal(err)
			}
			if !gcfg.G.Equal(cfg.G) {
				t.Errorf("gravity config G = %s, want %s", gcfg.G, cfg.G)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("g: heavy\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, exact.ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestSaveLoad_ExactGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := DefaultConfig()
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.G.Equal(gravity.DefaultG()) {
		t.Errorf("g = %s, want %s", loaded.G, gravity.DefaultG())
	}
}

func TestPresetsRun(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			sys, err := cfg.BuildSystem()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			result, err := sim.New(sys).Run(ctx, cfg.SimConfig())

			if name == "coincident" {
				if !errors.Is(err, exact.ErrDivisionByZero) {
					t.Fatalf("expected ErrDivisionByZero, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if result.StepsTaken != cfg.Ticks {
				t.Errorf("steps = %d, want %d", result.StepsTaken, cfg.Ticks)
			}
		})
	}
}
