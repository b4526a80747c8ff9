// Package sink writes composed frames to output formats.
//
// [RenderSVG] and [RenderPNG] draw a [render.Drawing]; [RenderJSON] exports
// the scene itself (anchors, edges, current reveal) for other tools. Each
// renderer takes functional options, for example:
//
//	png, err := sink.RenderPNG(d, sink.WithPNGPalette(p), sink.WithScale(2))
package sink
