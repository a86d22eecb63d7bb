package main

import (
	"fmt"

	"github.com/okian/vlaboard/internal/adapters/source"
	"github.com/okian/vlaboard/internal/sample"
	"github.com/okian/vlaboard/pkg/logger"
	"github.com/spf13/cobra"
)

func newSampleCmd(c *cli) *cobra.Command {
	var (
		models int
		seed   uint64
		every  int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic submission sheet",
		Long: `sample writes a submission sheet with random but plausible results in
the fixed column layout. The output format follows the file extension:
.csv, .xlsx or .xlsm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rows, err := sample.New(
				sample.WithModels(models),
				sample.WithSeed(seed),
				sample.WithReferenceEvery(every),
			).Rows(ctx)
			if err != nil {
				return err
			}
			if err := source.Save(ctx, out, rows, source.WithSheet(c.cfg.Sheet)); err != nil {
				return err
			}
			logger.Get().Info(ctx, "sample sheet written",
				logger.String("path", out),
				logger.Int("rows", len(rows)),
				logger.Int("models", models))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&models, "models", 50, "number of models")
	flags.Uint64Var(&seed, "seed", 1, "random seed")
	flags.IntVar(&every, "reference-every", 5, "add a reference row after every n models; 0 disables")
	flags.StringVar(&out, "out", "sample.xlsx", "output sheet")
	return cmd
}
