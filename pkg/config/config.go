// Package config loads stargaze scene settings from TOML.
//
// Every field has a default, so a config file only needs the values it
// changes:
//
//	stride = 10
//	policy = "bidirectional-ray"
//
//	[camera]
//	position = [0.0, 0.5, 3.0]
//
//	[frame]
//	width = 1920
//	height = 1080
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/stargaze/pkg/dataset"
	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/project"
	"github.com/matzehuels/stargaze/pkg/scene"
)

// DefaultSeed is the random seed for reproducible constellations.
const DefaultSeed = uint64(42)

// Config is the full scene configuration.
type Config struct {
	// Dataset is a JSON point file. Empty means the built-in pentagram.
	Dataset  string `toml:"dataset"`
	Samples  int    `toml:"samples" validate:"min=1,max=1000000"`
	Stride   int    `toml:"stride" validate:"min=1"`
	Policy   string `toml:"policy" validate:"oneof=fixed-depth bidirectional-ray ray-jitter"`
	Topology string `toml:"topology" validate:"oneof=closed open"`
	Seed     uint64 `toml:"seed"`

	Camera Camera `toml:"camera"`
	Frame  Frame  `toml:"frame"`
}

// Camera configures the viewer at setup time.
type Camera struct {
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
	FOV      float64    `toml:"fov" validate:"gt=0,lt=180"`
	Near     float64    `toml:"near" validate:"gt=0"`
	Far      float64    `toml:"far" validate:"gtfield=Near"`
	Damping  float64    `toml:"damping" validate:"gte=0,lte=1"`
}

// Frame configures rendered output.
type Frame struct {
	Width      int    `toml:"width" validate:"min=16,max=8192"`
	Height     int    `toml:"height" validate:"min=16,max=8192"`
	Stars      int    `toml:"stars" validate:"min=0,max=100000"`
	Background string `toml:"background" validate:"hexcolor"`
	Fog        string `toml:"fog" validate:"hexcolor"`
	Line       string `toml:"line" validate:"hexcolor"`
	Star       string `toml:"star" validate:"hexcolor"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Samples:  dataset.DefaultSamples,
		Stride:   scene.DefaultStride,
		Policy:   project.DefaultName,
		Topology: string(scene.ClosedLoop),
		Seed:     DefaultSeed,
		Camera: Camera{
			Position: [3]float64{scene.DefaultPosition.X, scene.DefaultPosition.Y, scene.DefaultPosition.Z},
			FOV:      scene.DefaultFOV,
			Near:     scene.DefaultNear,
			Far:      scene.DefaultFar,
			Damping:  scene.DefaultDamping,
		},
		Frame: Frame{
			Width:      800,
			Height:     600,
			Stars:      400,
			Background: "#07021a",
			Fog:        "#350089",
			Line:       "#ffffff",
			Star:       "#ffffff",
		},
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Camera.Position == c.Camera.Target {
		return errors.New(errors.ErrCodeInvalidConfig, "camera.position must differ from camera.target")
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}

	e := verrs[0]
	field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))
	var msg string
	switch e.Tag() {
	case "min", "gte":
		msg = fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		msg = fmt.Sprintf("must not exceed %s", e.Param())
	case "gt":
		msg = fmt.Sprintf("must be greater than %s", e.Param())
	case "lt":
		msg = fmt.Sprintf("must be less than %s", e.Param())
	case "gtfield":
		msg = fmt.Sprintf("must be greater than %s", strings.ToLower(e.Param()))
	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	case "hexcolor":
		msg = "must be a hex colour such as #ffffff"
	default:
		msg = fmt.Sprintf("validation failed (%s)", e.Tag())
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s: %s (got %v)", field, msg, e.Value())
}

// CameraSetup returns the scene camera described by the config.
func (c Config) CameraSetup() scene.Camera {
	cam := scene.DefaultCamera()
	cam.Position = vec(c.Camera.Position)
	cam.Target = vec(c.Camera.Target)
	cam.FOV = c.Camera.FOV
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	return cam
}

// Orbit returns an orbit rig starting at the configured camera.
func (c Config) Orbit() *scene.Orbit {
	o := scene.NewOrbit(c.CameraSetup())
	o.Damping = c.Camera.Damping
	return o
}

// Points loads the configured dataset, or generates the built-in one.
func (c Config) Points() ([]geom.Vec2, error) {
	if c.Dataset == "" {
		return dataset.Pentagram(c.Samples), nil
	}
	return dataset.ReadFile(c.Dataset)
}

func vec(a [3]float64) geom.Vec3 {
	return geom.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
