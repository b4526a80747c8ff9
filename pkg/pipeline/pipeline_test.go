package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/project"
	"github.com/matzehuels/stargaze/pkg/reveal"
	"github.com/matzehuels/stargaze/pkg/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	if opts.Stride != scene.DefaultStride {
		t.Errorf("Stride = %d, want %d", opts.Stride, scene.DefaultStride)
	}
	if opts.Policy != project.DefaultName {
		t.Errorf("Policy = %q, want %q", opts.Policy, project.DefaultName)
	}
	if opts.Topology != string(scene.ClosedLoop) {
		t.Errorf("Topology = %q", opts.Topology)
	}
	if opts.Seed != 0 {
		t.Errorf("Seed = %d, want an explicit zero seed kept", opts.Seed)
	}
	if opts.Camera != scene.DefaultCamera() {
		t.Errorf("Camera = %+v", opts.Camera)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d", opts.Width, opts.Height)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative stride", Options{Stride: -1}, errors.ErrCodeInvalidInput},
		{"unknown policy", Options{Policy: "orthographic"}, errors.ErrCodeInvalidPolicy},
		{"unknown topology", Options{Topology: "spiral"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative width", Options{Width: -5}, errors.ErrCodeInvalidInput},
		{"negative stars", Options{Stars: -1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestOptionsView(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantLook geom.Vec3
		wantDist float64
	}{
		{"setup view", Options{}, geom.V3(0, 0, -1), 3},
		{"quarter turn", Options{Yaw: 90}, geom.V3(-1, 0, 0), 3},
		{"closer", Options{Distance: 2}, geom.V3(0, 0, -1), 2},
		{"past far plane", Options{Distance: 50}, geom.V3(0, 0, -1), scene.DefaultFar},
		{"raised", Options{Pitch: 20}, geom.V3(0, -math.Sin(20*math.Pi/180), -math.Cos(20*math.Pi/180)), 3},
		{"below horizon clamped", Options{Pitch: -20}, geom.V3(0, 0, -1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.opts.View()
			look := view.LookDirection()
			if look.Dist(tt.wantLook) > 1e-9 {
				t.Errorf("look = %v, want %v", look, tt.wantLook)
			}
			if d := view.Position.Dist(view.Target); math.Abs(d-tt.wantDist) > 1e-9 {
				t.Errorf("distance = %v, want %v", d, tt.wantDist)
			}
		})
	}
}

func quietRunner(c *memCache) *Runner {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	if c == nil {
		return NewRunner(nil, nil, logger)
	}
	return NewRunner(c, nil, logger)
}

func TestExecute(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), Options{Formats: []string{FormatSVG, FormatPNG, FormatJSON}, Stars: 100})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.Points != 2250 || res.Stats.Anchors != 150 || res.Stats.Edges != 150 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if math.Abs(res.Reveal-reveal.Peak) > 1e-9 {
		t.Errorf("Reveal = %v, want %v", res.Reveal, reveal.Peak)
	}
	for _, f := range []string{FormatSVG, FormatPNG, FormatJSON} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !bytes.Contains(res.Artifacts[FormatJSON], []byte(`"id"`)) {
		t.Error("JSON artifact should carry a scene id")
	}
	if res.CacheInfo.RenderHit {
		t.Error("null cache cannot hit")
	}
	if len(res.DatasetHash) != 64 {
		t.Errorf("DatasetHash = %q", res.DatasetHash)
	}
}

func TestExecuteTurnedAwayHidesEdges(t *testing.T) {
	res, err := quietRunner(nil).Execute(context.Background(), Options{Yaw: 90})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reveal != 0 {
		t.Errorf("Reveal = %v, want 0", res.Reveal)
	}
	if strings.Contains(string(res.Artifacts[FormatSVG]), "<line ") {
		t.Error("edges drawn while looking away")
	}
}

func TestExecuteSeedZero(t *testing.T) {
	anchor := func(seed uint64) geom.Vec3 {
		t.Helper()
		res, err := quietRunner(nil).Execute(context.Background(), Options{Seed: seed, Formats: []string{FormatJSON}})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !strings.Contains(string(res.Artifacts[FormatJSON]), fmt.Sprintf(`"seed": %d`, seed)) {
			t.Errorf("seed %d not exported", seed)
		}
		return res.Scene.Anchors()[0].Position
	}

	if zero, def := anchor(0), anchor(42); zero.ApproxEqual(def) {
		t.Errorf("seed 0 and seed 42 gave the same anchor %v", zero)
	}
	if a, b := anchor(0), anchor(0); !a.ApproxEqual(b) {
		t.Errorf("seed 0 not reproducible: %v vs %v", a, b)
	}
}

func TestExecuteOpenPath(t *testing.T) {
	res, err := quietRunner(nil).Execute(context.Background(), Options{Topology: string(scene.OpenPath)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Edges != res.Stats.Anchors-1 {
		t.Errorf("edges = %d, anchors = %d", res.Stats.Edges, res.Stats.Anchors)
	}
}

func TestExecuteCache(t *testing.T) {
	c := newMemCache()
	r := quietRunner(c)
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Fatal("first run should miss")
	}
	if len(c.data) != 2 {
		t.Fatalf("cached %d entries, want 2", len(c.data))
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}

	moved := Options{Formats: opts.Formats, Yaw: 10}
	fourth, err := r.Execute(context.Background(), moved)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.RenderHit {
		t.Error("a different view must not hit")
	}
}

func TestExecuteSetupErrors(t *testing.T) {
	square := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	onCorner := scene.DefaultCamera()
	onCorner.Position = geom.V3(1, 1, 0)

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "vertical line",
			opts: Options{Points: []geom.Vec2{{X: 2, Y: 0}, {X: 2, Y: 5}}, Stride: 1},
			code: errors.ErrCodeDegenerateInput,
		},
		{
			name: "camera on an anchor",
			opts: Options{Points: square, Stride: 1, Camera: onCorner},
			code: errors.ErrCodeDegenerateRay,
		},
		{
			name: "missing dataset",
			opts: Options{Dataset: "/does/not/exist.json"},
			code: errors.ErrCodeFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestRunnerNormalize(t *testing.T) {
	pts, err := quietRunner(nil).Normalize(Options{Points: []geom.Vec2{{X: 0, Y: 0}, {X: 4, Y: 2}}})
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Vec2{{X: -1, Y: -1}, {X: 1, Y: 1}}
	for i := range want {
		if !pts[i].ApproxEqual(want[i]) {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }
