package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stargaze/pkg/config"
	"github.com/matzehuels/stargaze/pkg/errors"
	"github.com/matzehuels/stargaze/pkg/geom"
	"github.com/matzehuels/stargaze/pkg/pipeline"
	"github.com/matzehuels/stargaze/pkg/render/sink"
)

// defaultBase names output files when neither --output nor a dataset is
// given.
const defaultBase = "constellation"

// sceneFlags are the scene settings shared by render and explore. Each one
// overrides the config file only when set on the command line.
type sceneFlags struct {
	configPath  string
	stride      int
	policy      string
	topology    string
	seed        uint64
	samples     int
	metricsFile string
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML scene file")
	cmd.Flags().IntVar(&f.stride, "stride", def.Stride, "use every n-th point of the dataset")
	cmd.Flags().StringVar(&f.policy, "policy", def.Policy, "depth policy: fixed-depth, bidirectional-ray, ray-jitter")
	cmd.Flags().StringVar(&f.topology, "topology", def.Topology, "edge topology: closed, open")
	cmd.Flags().Uint64Var(&f.seed, "seed", def.Seed, "random seed for depths and background stars")
	cmd.Flags().IntVar(&f.samples, "samples", def.Samples, "points in the built-in pentagram")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
}

// apply loads the config file and overlays the flags that were set.
func (f *sceneFlags) apply(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	set := cmd.Flags().Changed
	if len(args) > 0 {
		cfg.Dataset = args[0]
	}
	if set("stride") {
		cfg.Stride = f.stride
	}
	if set("policy") {
		cfg.Policy = f.policy
	}
	if set("topology") {
		cfg.Topology = f.topology
	}
	if set("seed") {
		cfg.Seed = f.seed
	}
	if set("samples") {
		cfg.Samples = f.samples
	}
	return cfg, cfg.Validate()
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	sceneFlags
	output    string  // output file (single format) or base path
	formats   string  // comma-separated formats
	yaw       float64 // degrees
	pitch     float64 // degrees
	distance  float64
	width     int
	height    int
	stars     int
	scale     float64
	lineWidth float64
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	def := config.Default()
	opts := renderOpts{
		width:  def.Frame.Width,
		height: def.Frame.Height,
		stars:  def.Frame.Stars,
		scale:  1,
	}

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render the constellation to SVG, PNG or JSON",
		Long: `Render builds the constellation from a JSON point set (or the built-in
pentagram) and draws it from a camera orbiting the origin.

The lines only appear when the camera looks close to straight down -Z,
which is the default view. Turn away with --yaw or --pitch to see the
stars scattered at random depths.`,
		Example: `  stargaze render
  stargaze render outline.json -f svg,png --policy bidirectional-ray
  stargaze render --yaw 35 --pitch -20 -o side.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.apply(cmd, args)
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions(cmd, cfg)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, popts, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.yaw, "yaw", 0, "orbit the camera around the Y axis (degrees)")
	cmd.Flags().Float64Var(&opts.pitch, "pitch", 0, "raise the camera towards the +Y pole (degrees)")
	cmd.Flags().Float64Var(&opts.distance, "distance", 0, "camera distance from the origin (0 keeps the configured one)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "frame height in pixels")
	cmd.Flags().IntVar(&opts.stars, "stars", opts.stars, "background stars")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", 1, "edge stroke width in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if the frame is cached")

	return cmd
}

// pipelineOptions merges the resolved config with the frame flags.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command, cfg config.Config) (pipeline.Options, error) {
	formats := parseFormats(o.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return pipeline.Options{}, err
	}

	set := cmd.Flags().Changed
	width, height, stars := cfg.Frame.Width, cfg.Frame.Height, cfg.Frame.Stars
	if set("width") {
		width = o.width
	}
	if set("height") {
		height = o.height
	}
	if set("stars") {
		stars = o.stars
	}

	return pipeline.Options{
		Dataset:   cfg.Dataset,
		Samples:   cfg.Samples,
		Stride:    cfg.Stride,
		Policy:    cfg.Policy,
		Topology:  cfg.Topology,
		Seed:      cfg.Seed,
		Camera:    cfg.CameraSetup(),
		Yaw:       o.yaw,
		Pitch:     o.pitch,
		Distance:  o.distance,
		Formats:   formats,
		Width:     width,
		Height:    height,
		Stars:     stars,
		Palette:   palette(cfg.Frame),
		LineWidth: o.lineWidth,
		Scale:     o.scale,
		Refresh:   o.refresh,
	}, nil
}

func palette(f config.Frame) sink.Palette {
	return sink.Palette{Background: f.Background, Fog: f.Fog, Line: f.Line, Star: f.Star}
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, opts pipeline.Options, flags *renderOpts) error {
	logger := loggerFromContext(ctx)
	defer enableMetrics(flags.metricsFile, logger)()

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = logger
	spinner := newSpinnerWithContext(ctx, "Rendering constellation...")
	if !isTerminal(os.Stderr) {
		spinner.quiet()
	}
	spinner.Start()
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Built %d anchors from %d points", result.Stats.Anchors, result.Stats.Points))

	base := basePath(flags.output, cfg.Dataset)
	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := base + "." + format
		if flags.output != "" && len(opts.Formats) == 1 {
			path = flags.output
		}
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", describeView(result.View.LookDirection()))
	printSceneStats(result.Stats.Anchors, result.Stats.Edges, result.Reveal, result.CacheInfo.RenderHit)
	printKeyValue("Policy", opts.Policy)
	printKeyValue("Seed", fmt.Sprint(opts.Seed))
	for _, p := range paths {
		printFile(p)
	}
	if result.Reveal == 0 {
		printNextStep("Face the constellation", "stargaze render --yaw 0 --pitch 0")
	}
	return nil
}

// basePath derives the output path without extension. An explicit output
// loses a known format extension; otherwise the dataset name is used.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input == "" {
		return defaultBase
	}
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

func writeOutput(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// describeView summarizes the camera heading for status output.
func describeView(look geom.Vec3) string {
	return fmt.Sprintf("view along (%.2f, %.2f, %.2f)", look.X, look.Y, look.Z)
}
