// Package geom provides the small vector toolkit and the point normalizer
// used to turn a 2D sample set into a constellation.
//
// # Normalization
//
// [Normalize] maps an arbitrary point cloud into the [-1, 1] square. Each
// axis is scaled independently, so a wide input is stretched vertically
// (and vice versa):
//
//	pts, err := geom.Normalize([]geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}})
//	// pts == [(-1,-1), (1,1)]
//
// A set with zero extent on either axis cannot be normalized and yields a
// [*DegenerateInputError] naming the axis.
package geom
