// Package scene holds the constellation a render loop draws: the static
// anchor points, the edges between them and the per-frame reveal state.
//
// # Lifecycle
//
// A [Scene] is created once by [Build] from a raw point set and a camera
// snapshot. Anchors and edge identities never change afterwards. Once per
// tick the render-loop driver calls [Scene.UpdateReveal] with the live
// camera look direction, then reads [Scene.Edges] to draw the lines with
// the resulting opacity:
//
//	s, err := scene.Build(points, scene.DefaultCamera(), scene.Options{
//	    Stride:   15,
//	    Topology: scene.ClosedLoop,
//	    Policy:   project.RayWithJitter{Rand: project.NewSource(42)},
//	})
//	...
//	for tick := range frames {
//	    s.UpdateReveal(orbit.Camera().LookDirection())
//	    draw(s.Anchors(), s.Edges())
//	}
//
// A Scene is not safe for concurrent use; writes and reads of the reveal
// intensity are expected to happen on the same tick of one loop.
//
// # Camera
//
// [Camera] is a read-only snapshot. [Orbit] models the orbit rig that
// produces those snapshots: a camera circling a target, with damping and
// the clamps the viewer uses (distance within [Near, Far], never below the
// horizon).
package scene
