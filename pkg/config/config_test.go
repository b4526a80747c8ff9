package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stargaze.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
stride = 10
policy = "bidirectional-ray"
topology = "open"

[camera]
position = [0.0, 0.5, 4.0]

[frame]
width = 1920
height = 1080
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stride != 10 || cfg.Policy != "bidirectional-ray" || cfg.Topology != "open" {
		t.Errorf("scene fields not loaded: %+v", cfg)
	}
	if cfg.Frame.Width != 1920 || cfg.Frame.Height != 1080 {
		t.Errorf("frame not loaded: %+v", cfg.Frame)
	}
	// Untouched values keep their defaults.
	if cfg.Seed != DefaultSeed || cfg.Camera.FOV != 70 || cfg.Frame.Stars != 400 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if got := cfg.CameraSetup().Position; got != geom.V3(0, 0.5, 4) {
		t.Errorf("camera position = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode errors.Code
		wantMsg  string
	}{
		{"unknown key", "strid = 3\n", errors.ErrCodeInvalidConfig, "unknown keys: strid"},
		{"bad toml", "stride = \n", errors.ErrCodeInvalidConfig, "parse"},
		{"zero stride", "stride = 0\n", errors.ErrCodeInvalidConfig, "stride: must be at least 1"},
		{"unknown policy", `policy = "orthographic"` + "\n", errors.ErrCodeInvalidConfig, "policy: must be one of"},
		{"far before near", "[camera]\nnear = 5.0\nfar = 1.0\n", errors.ErrCodeInvalidConfig, "camera.far"},
		{"bad colour", "[frame]\nline = \"white\"\n", errors.ErrCodeInvalidConfig, "frame.line"},
		{"camera on target", "[camera]\nposition = [0.0, 0.0, 0.0]\n", errors.ErrCodeInvalidConfig, "camera.position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("error = %v, want code %v", err, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestPoints(t *testing.T) {
	cfg := Default()
	cfg.Samples = 100
	pts, err := cfg.Points()
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 100 {
		t.Errorf("built-in dataset has %d points, want 100", len(pts))
	}
}

func TestOrbitUsesDamping(t *testing.T) {
	cfg := Default()
	cfg.Camera.Damping = 0.2
	if o := cfg.Orbit(); o.Damping != 0.2 {
		t.Errorf("Damping = %v, want 0.2", o.Damping)
	}
}
