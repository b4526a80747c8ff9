package sink

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/scene"
)

// sceneNamespace scopes scene IDs so equal keys from other tools never
// collide with ours.
var sceneNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/stargaze/scene"))

// SceneID derives a stable scene identifier from a cache or options key.
func SceneID(key string) uuid.UUID {
	return uuid.NewSHA1(sceneNamespace, []byte(key))
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id     string
	seed   uint64
	seeded bool
	camera *scene.Camera
}

// WithJSONKey records SceneID(key) as the document id.
func WithJSONKey(key string) JSONOption {
	return func(r *jsonRenderer) { r.id = SceneID(key).String() }
}

// WithJSONSeed records the projection seed so the scene can be rebuilt.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed; r.seeded = true }
}

// WithJSONView records the camera the reveal was evaluated for.
func WithJSONView(cam scene.Camera) JSONOption {
	return func(r *jsonRenderer) { r.camera = &cam }
}

type jsonOutput struct {
	ID       string       `json:"id,omitempty"`
	Policy   string       `json:"policy"`
	Topology string       `json:"topology"`
	Seed     *uint64      `json:"seed,omitempty"`
	Reveal   float64      `json:"reveal"`
	Setup    jsonCamera   `json:"setup_camera"`
	View     *jsonCamera  `json:"view_camera,omitempty"`
	Anchors  []jsonAnchor `json:"anchors"`
	Edges    []jsonEdge   `json:"edges"`
}

type jsonCamera struct {
	Position jsonVec3 `json:"position"`
	Target   jsonVec3 `json:"target"`
	Look     jsonVec3 `json:"look"`
	FOV      float64  `json:"fov"`
}

type jsonVec3 [3]float64

type jsonAnchor struct {
	Index    int        `json:"index"`
	Source   [2]float64 `json:"source"`
	Position jsonVec3   `json:"position"`
}

type jsonEdge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Reveal float64 `json:"reveal"`
}

// RenderJSON exports the scene as a pretty-printed JSON document: the
// anchors in sampling order, the edges with their current reveal, and the
// cameras involved.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:       r.id,
		Policy:   s.Policy(),
		Topology: string(s.Topology()),
		Reveal:   s.Reveal(),
		Setup:    toJSONCamera(s.Camera()),
		Anchors:  make([]jsonAnchor, len(s.Anchors())),
		Edges:    make([]jsonEdge, len(s.Edges())),
	}
	if r.seeded {
		out.Seed = &r.seed
	}
	if r.camera != nil {
		v := toJSONCamera(*r.camera)
		out.View = &v
	}
	for i, a := range s.Anchors() {
		out.Anchors[i] = jsonAnchor{
			Index:    a.Index,
			Source:   [2]float64{a.Source.X, a.Source.Y},
			Position: vec3(a.Position),
		}
	}
	for i, e := range s.Edges() {
		out.Edges[i] = jsonEdge{From: e.From, To: e.To, Reveal: e.Reveal}
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONCamera(c scene.Camera) jsonCamera {
	return jsonCamera{
		Position: vec3(c.Position),
		Target:   vec3(c.Target),
		Look:     vec3(c.LookDirection()),
		FOV:      c.FOV,
	}
}

func vec3(v geom.Vec3) jsonVec3 { return jsonVec3{v.X, v.Y, v.Z} }
