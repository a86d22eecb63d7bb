package main

import (
	"fmt"

	"github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/adapters/source"
	app "github.com/okian/vlaboard/internal/app"
	"github.com/okian/vlaboard/internal/config"
	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/pkg/logger"
	"github.com/spf13/cobra"
)

func newBuildCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the leaderboards once and write them to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(c.cfg, nil)
			if err != nil {
				return err
			}
			report, err := svc.Build(cmd.Context(), c.cfg.Input)
			if err != nil {
				return err
			}
			for _, f := range report.Files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	pipelineFlags(cmd)
	return cmd
}

// newService wires the pipeline from cfg. store may be nil for batch runs.
func newService(cfg *config.Config, store repository.Store) (*app.Service, error) {
	policy, err := aggregate.ParsePolicy(cfg.MergePolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	opts := []app.Option{
		app.WithLogger(logger.Named("pipeline")),
		app.WithReader(source.New(source.WithSheet(cfg.Sheet), source.WithHeaderRows(cfg.HeaderRows))),
		app.WithOutputDir(cfg.OutputDir),
		app.WithWorkers(cfg.Workers),
		app.WithPolicy(policy),
		app.WithTopN(cfg.TopN),
		app.WithMetricsFile(cfg.MetricsFile),
	}
	if store != nil {
		opts = append(opts, app.WithStore(store))
	}
	return app.New(opts...), nil
}
