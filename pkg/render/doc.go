// Package render turns a scene and a camera into a flat drawing.
//
// [Compose] projects the background stars, the constellation anchors and
// the edges through a perspective camera and returns screen-space
// primitives ordered back to front. Output formats live in the [sink]
// subpackage and only consume the [Drawing]:
//
//	s.UpdateReveal(cam.LookDirection())
//	d := render.Compose(render.Frame{Scene: s, Camera: cam, Stars: stars, Width: 800, Height: 600})
//	svg := sink.RenderSVG(d)
//
// Compose never mutates the scene. Edge opacity is whatever the last
// UpdateReveal wrote, so the caller decides when a tick happens.
package render
