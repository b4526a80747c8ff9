package render

import (
	"math"
	"testing"

	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/project"
	"github.com/matzehuels/stargaze/pkg/reveal"
	"github.com/matzehuels/stargaze/pkg/scene"
)

type zeroSource struct{}

func (zeroSource) Float64() float64 { return 0 }

func squareScene(t *testing.T, topology scene.Topology) *scene.Scene {
	t.Helper()
	raw := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	s, err := scene.Build(raw, scene.DefaultCamera(), scene.Options{
		Stride:   1,
		Topology: topology,
		Policy:   project.FixedDepth{Rand: zeroSource{}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestComposeHiddenEdges(t *testing.T) {
	s := squareScene(t, scene.ClosedLoop)
	d := Compose(Frame{Scene: s, Camera: scene.DefaultCamera(), Width: 800, Height: 600})

	if len(d.Anchors) != 4 {
		t.Fatalf("anchors = %d, want 4", len(d.Anchors))
	}
	if len(d.Lines) != 0 {
		t.Errorf("lines = %d before any reveal, want 0", len(d.Lines))
	}
	if d.Width != 800 || d.Height != 600 {
		t.Errorf("size = %vx%v", d.Width, d.Height)
	}
}

func TestComposeRevealedEdges(t *testing.T) {
	tests := []struct {
		topology scene.Topology
		want     int
	}{
		{scene.ClosedLoop, 4},
		{scene.OpenPath, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.topology), func(t *testing.T) {
			s := squareScene(t, tt.topology)
			cam := scene.DefaultCamera()
			s.UpdateReveal(cam.LookDirection())

			d := Compose(Frame{Scene: s, Camera: cam, Width: 800, Height: 600})
			if len(d.Lines) != tt.want {
				t.Fatalf("lines = %d, want %d", len(d.Lines), tt.want)
			}
			for _, l := range d.Lines {
				if l.Alpha != reveal.Peak {
					t.Errorf("line %d alpha = %v, want %v", l.Edge, l.Alpha, reveal.Peak)
				}
			}
			if d.Reveal != reveal.Peak {
				t.Errorf("Reveal = %v, want %v", d.Reveal, reveal.Peak)
			}
		})
	}
}

func TestComposeProjectsSymmetrically(t *testing.T) {
	s := squareScene(t, scene.ClosedLoop)
	d := Compose(Frame{Scene: s, Camera: scene.DefaultCamera(), Width: 800, Height: 600})

	// Anchor 0 is the bottom-left corner, anchor 2 the top-right one.
	byIndex := map[int]Dot{}
	for _, a := range d.Anchors {
		byIndex[a.Anchor] = a
	}
	bl, tr := byIndex[0], byIndex[2]
	if math.Abs((bl.X+tr.X)/2-400) > 1e-9 || math.Abs((bl.Y+tr.Y)/2-300) > 1e-9 {
		t.Errorf("square not centred: %v %v", bl, tr)
	}
	if bl.Y <= tr.Y {
		t.Errorf("bottom-left y = %v should be below top-right y = %v", bl.Y, tr.Y)
	}
	if bl.Depth != 3 {
		t.Errorf("depth = %v, want 3", bl.Depth)
	}
}

func TestComposeClipsBeyondFar(t *testing.T) {
	s := squareScene(t, scene.ClosedLoop)
	cam := scene.DefaultCamera()
	cam.Far = 2
	s.UpdateReveal(cam.LookDirection())

	d := Compose(Frame{Scene: s, Camera: cam, Width: 800, Height: 600})
	if len(d.Anchors) != 0 || len(d.Lines) != 0 {
		t.Errorf("got %d anchors and %d lines past the far plane", len(d.Anchors), len(d.Lines))
	}
}

func TestComposeStarsFarToNear(t *testing.T) {
	d := Compose(Frame{
		Camera: scene.DefaultCamera(),
		Stars:  scene.Starfield(500, 7),
		Width:  640,
		Height: 480,
	})
	if len(d.Stars) == 0 {
		t.Fatal("no stars visible")
	}
	for i := 1; i < len(d.Stars); i++ {
		if d.Stars[i].Depth > d.Stars[i-1].Depth {
			t.Fatalf("star %d nearer than star %d", i-1, i)
		}
	}
	for _, s := range d.Stars {
		if s.Anchor != -1 {
			t.Fatalf("background star tagged with anchor %d", s.Anchor)
		}
		if s.X < 0 || s.X > 640 || s.Y < 0 || s.Y > 480 {
			t.Fatalf("star off screen: %+v", s)
		}
	}
}
