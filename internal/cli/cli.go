// Package cli implements the stargaze command-line interface.
//
// # Commands
//
//   - render: build the constellation and write SVG, PNG or JSON frames
//   - explore: orbit the constellation interactively in the terminal
//   - normalize: print a dataset rescaled to [-1, 1]
//   - cache: inspect or clear the frame cache
//   - completion: generate shell completion scripts
//
// Scene settings come from a TOML file (--config) with command-line flags
// taking precedence. All commands support --verbose (-v) for debug logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stargaze/pkg/buildinfo"
	"github.com/matzehuels/stargaze/pkg/cache"
	"github.com/matzehuels/stargaze/pkg/config"
	"github.com/matzehuels/stargaze/pkg/metrics"
	"github.com/matzehuels/stargaze/pkg/observability"
	"github.com/matzehuels/stargaze/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "stargaze"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stargaze hides a constellation in a field of stars",
		Long:         `Stargaze projects a 2D outline into a 3D starfield. The stars look random from everywhere except one direction; face it and the lines of the constellation fade in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CachePrefix())
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		printWarning("Frame cache disabled: %v", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/stargaze/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// enableMetrics installs a Prometheus registry as the scene and cache hooks
// when path is set. The returned func writes the registry to path and
// restores the no-op hooks.
func enableMetrics(path string, logger *log.Logger) func() {
	if path == "" {
		return func() {}
	}
	reg := metrics.NewRegistry()
	observability.SetSceneHooks(reg)
	observability.SetCacheHooks(reg)
	return func() {
		defer observability.Reset()
		if err := reg.WriteFile(path); err != nil {
			logger.Warn("write metrics", "path", path, "error", err)
			return
		}
		logger.Debug("wrote metrics", "path", path)
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
