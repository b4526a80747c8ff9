package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stargaze/pkg/dataset"
	"github.com/matzehuels/stargaze/pkg/pipeline"
)

// normalizeCommand prints a dataset rescaled to [-1, 1] on both axes.
func (c *CLI) normalizeCommand() *cobra.Command {
	var configPath string
	var samples int

	cmd := &cobra.Command{
		Use:   "normalize [dataset.json]",
		Short: "Print a dataset rescaled to [-1, 1]",
		Long: `Normalize rescales each axis of a point set independently so both span
[-1, 1], and prints the result in the same JSON format it reads. Without a
dataset the built-in pentagram is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Dataset = args[0]
			}
			if cmd.Flags().Changed("samples") {
				cfg.Samples = samples
			}

			runner := pipeline.NewRunner(nil, nil, loggerFromContext(cmd.Context()))
			points, err := runner.Normalize(pipeline.Options{Dataset: cfg.Dataset, Samples: cfg.Samples})
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("normalized dataset", "points", len(points))
			return dataset.Write(cmd.OutOrStdout(), points)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML scene file")
	cmd.Flags().IntVar(&samples, "samples", dataset.DefaultSamples, "points in the built-in pentagram")
	return cmd
}
