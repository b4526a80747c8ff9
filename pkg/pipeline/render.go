package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stargaze/pkg/observability"
	"github.com/matzehuels/stargaze/pkg/render"
	"github.com/matzehuels/stargaze/pkg/render/sink"
	"github.com/matzehuels/stargaze/pkg/scene"
)

// Render draws s from view in each of opts.Formats. The scene's current
// reveal is used as is; call Reveal first.
func Render(ctx context.Context, s *scene.Scene, view scene.Camera, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var drawing *render.Drawing
	compose := func() render.Drawing {
		if drawing == nil {
			d := render.Compose(render.Frame{
				Scene:  s,
				Camera: view,
				Stars:  scene.Starfield(opts.Stars, opts.Seed),
				Width:  opts.Width,
				Height: opts.Height,
			})
			drawing = &d
		}
		return *drawing
	}

	hooks := observability.Scene()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(compose(),
				sink.WithPalette(opts.Palette),
				sink.WithLineWidth(opts.LineWidth))
		case FormatPNG:
			data, err = sink.RenderPNG(compose(),
				sink.WithPNGPalette(opts.Palette),
				sink.WithPNGLineWidth(opts.LineWidth),
				sink.WithScale(opts.Scale))
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONSeed(opts.Seed), sink.WithJSONView(view)}
			if opts.SceneKey != "" {
				jsonOpts = append(jsonOpts, sink.WithJSONKey(opts.SceneKey))
			}
			data, err = sink.RenderJSON(s, jsonOpts...)
		default:
			err = ValidateFormat(format)
		}

		hooks.OnRender(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
