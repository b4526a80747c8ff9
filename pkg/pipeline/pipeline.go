// Package pipeline runs the stargaze frame pipeline used by the CLI.
//
// # Architecture
//
// A run has four stages:
//
//  1. Load: read the point set (a JSON file or the built-in pentagram)
//  2. Build: normalize, sample and project it into a [scene.Scene]
//  3. Reveal: place the view camera and evaluate edge visibility once
//  4. Render: draw the frame in each requested format (SVG, PNG, JSON)
//
// Rendered artifacts are cached by a hash of the dataset, the scene options
// and the view; the scene itself is cheap and always rebuilt.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Policy:  "ray-jitter",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stargaze/pkg/cache"
	"github.com/matzehuels/stargaze/pkg/dataset"
	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/project"
	"github.com/matzehuels/stargaze/pkg/render/sink"
	"github.com/matzehuels/stargaze/pkg/scene"
)

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Dataset string      `json:"dataset,omitempty"` // JSON point file; empty means the built-in pentagram
	Points  []geom.Vec2 `json:"-"`                 // explicit points, used instead of Dataset
	Samples int         `json:"samples,omitempty"` // built-in pentagram resolution

	// Build options
	Stride   int          `json:"stride,omitempty"`
	Policy   string       `json:"policy,omitempty"`
	Topology string       `json:"topology,omitempty"`
	Seed     uint64       `json:"seed"` // used as given, zero included
	Camera   scene.Camera `json:"-"` // setup camera; zero value means scene.DefaultCamera

	// View options, relative to the setup camera
	Yaw      float64 `json:"yaw,omitempty"`      // degrees around the target's Y axis
	Pitch    float64 `json:"pitch,omitempty"`    // degrees towards the pole
	Distance float64 `json:"distance,omitempty"` // 0 keeps the setup distance

	// Render options
	Formats   []string     `json:"formats,omitempty"`
	Width     int          `json:"width,omitempty"`
	Height    int          `json:"height,omitempty"`
	Stars     int          `json:"stars,omitempty"` // background stars; 0 draws none
	Palette   sink.Palette `json:"-"`
	LineWidth float64      `json:"line_width,omitempty"`
	Scale     float64      `json:"scale,omitempty"` // PNG only
	Refresh   bool         `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Rand   project.Source `json:"-"` // nil means a PCG seeded with Seed

	// SceneKey identifies the scene in JSON output. Runner derives it from
	// the dataset hash and the build options.
	SceneKey string `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the built constellation, with the reveal for View applied.
	Scene *scene.Scene

	// View is the camera the frame was drawn from.
	View scene.Camera

	// Reveal is the edge intensity for View.
	Reveal float64

	// DatasetHash is the content hash of the loaded points.
	DatasetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int
	Anchors    int
	Edges      int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks every stage's options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetBuildDefaults fills in unset load and build options.
func (o *Options) SetBuildDefaults() {
	if o.Samples == 0 {
		o.Samples = dataset.DefaultSamples
	}
	if o.Stride == 0 {
		o.Stride = scene.DefaultStride
	}
	if o.Policy == "" {
		o.Policy = project.DefaultName
	}
	if o.Topology == "" {
		o.Topology = string(scene.ClosedLoop)
	}
	if o.Camera == (scene.Camera{}) {
		o.Camera = scene.DefaultCamera()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForBuild validates and sets defaults for loading and building.
func (o *Options) ValidateForBuild() error {
	o.SetBuildDefaults()
	if err := errors.ValidateStride(o.Stride); err != nil {
		return err
	}
	if o.Samples < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "samples must be positive, got %d", o.Samples)
	}
	if err := project.Validate(o.Policy); err != nil {
		return err
	}
	if _, err := scene.ParseTopology(o.Topology); err != nil {
		return err
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.LineWidth == 0 {
		o.LineWidth = 1
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 1 || o.Height < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Stars < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "stars must not be negative, got %d", o.Stars)
	}
	return ValidateFormats(o.Formats)
}

// View returns the camera the frame is drawn from: the setup camera
// orbited by Yaw and Pitch, at Distance from its target when set. Positive
// Pitch raises the camera towards the +Y pole.
func (o *Options) View() scene.Camera {
	cam := o.Camera
	if cam == (scene.Camera{}) {
		cam = scene.DefaultCamera()
	}
	orbit := scene.NewOrbit(cam)
	orbit.Rotate(o.Yaw*math.Pi/180, -o.Pitch*math.Pi/180)
	orbit.Settle()
	if o.Distance > 0 && orbit.Distance > 0 {
		orbit.Zoom(o.Distance / orbit.Distance)
	}
	return orbit.Camera()
}

// SceneKeyOpts returns cache key options for the scene build.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	p := o.Camera.Position
	return cache.SceneKeyOpts{
		Stride:   o.Stride,
		Policy:   o.Policy,
		Topology: o.Topology,
		Seed:     o.Seed,
		CameraX:  p.X,
		CameraY:  p.Y,
		CameraZ:  p.Z,
	}
}

// FrameKeyOpts returns cache key options for one rendered format.
func (o *Options) FrameKeyOpts(format string) cache.FrameKeyOpts {
	view := o.View()
	p := o.Palette
	return cache.FrameKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Eye:       [3]float64{view.Position.X, view.Position.Y, view.Position.Z},
		Target:    [3]float64{view.Target.X, view.Target.Y, view.Target.Z},
		FOV:       view.FOV,
		Near:      view.Near,
		Far:       view.Far,
		Stars:     o.Stars,
		Palette:   [4]string{p.Background, p.Fog, p.Line, p.Star},
		LineWidth: o.LineWidth,
		Scale:     o.Scale,
	}
}
