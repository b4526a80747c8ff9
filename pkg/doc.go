// Package pkg holds the stargaze libraries.
//
// # Overview
//
// Stargaze hides a constellation in a starfield. A flat point set is
// rescaled to [-1, 1], thinned to anchors, and each anchor is pushed to a
// random depth along the ray from the setup camera. The connecting lines
// only light up while the viewer looks close to the setup direction (0, 0, -1).
//
// The packages fall into three groups:
//
//  1. Core: [geom] (vectors, normalization), [project] (depth policies),
//     [reveal] (alignment to opacity) and [scene] (anchors, edges, camera rig).
//  2. Frames: [render] composes a 2D drawing for a camera, and [render/sink]
//     encodes it as SVG, PNG or JSON.
//  3. Plumbing: [dataset], [config], [pipeline], [cache], [observability],
//     [metrics], [errors] and [buildinfo].
//
// # Data Flow
//
//	dataset.json / built-in pentagram
//	         ↓
//	    [geom.Normalize]
//	         ↓
//	    [scene.Build] (stride sampling, projection, edges)
//	         ↓
//	    [scene.Scene.UpdateReveal] (once per frame)
//	         ↓
//	    [render.Compose] → SVG / PNG / JSON
//
// # Quick Start
//
//	points := dataset.Pentagram(dataset.DefaultSamples)
//	policy, _ := project.New("ray-jitter", project.NewSource(42))
//	s, err := scene.Build(points, scene.DefaultCamera(), scene.Options{
//	    Stride:   15,
//	    Policy:   policy,
//	    Topology: scene.ClosedLoop,
//	})
//	if err != nil {
//	    return err
//	}
//	s.UpdateReveal(geom.Vec3{Z: -1}) // every edge now has opacity 0.2
//
// For the whole flow with caching, use [pipeline.Runner].
package pkg
