package cache

// SceneKeyOpts are the inputs that decide where the anchors end up.
type SceneKeyOpts struct {
	Stride   int
	Policy   string
	Topology string
	Seed     uint64
	CameraX  float64
	CameraY  float64
	CameraZ  float64
}

// FrameKeyOpts are the inputs that decide how a frame is drawn.
type FrameKeyOpts struct {
	Format    string
	Width     int
	Height    int
	Eye       [3]float64 // view camera position
	Target    [3]float64
	FOV       float64
	Near      float64
	Far       float64
	Stars     int
	Palette   [4]string
	LineWidth float64
	Scale     float64
}

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey identifies a built scene.
	SceneKey(datasetHash string, scene SceneKeyOpts) string
	// FrameKey identifies one rendered frame of a scene.
	FrameKey(datasetHash string, scene SceneKeyOpts, frame FrameKeyOpts) string
}

// DefaultKeyer hashes all key inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey implements Keyer.
func (DefaultKeyer) SceneKey(datasetHash string, scene SceneKeyOpts) string {
	return hashKey("scene", datasetHash, scene)
}

// FrameKey implements Keyer.
func (DefaultKeyer) FrameKey(datasetHash string, scene SceneKeyOpts, frame FrameKeyOpts) string {
	return hashKey("frame", datasetHash, scene, frame)
}

// ScopedKeyer prefixes every key produced by an inner Keyer.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SceneKey implements Keyer.
func (k *ScopedKeyer) SceneKey(datasetHash string, scene SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(datasetHash, scene)
}

// FrameKey implements Keyer.
func (k *ScopedKeyer) FrameKey(datasetHash string, scene SceneKeyOpts, frame FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(datasetHash, scene, frame)
}
