package main

import (
	"fmt"

	"github.com/okian/vlaboard/internal/config"
	"github.com/okian/vlaboard/pkg/logger"
	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string

	// cfg is loaded once per invocation, before the subcommand runs.
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "vlaboard",
		Short: "Build VLA benchmark leaderboards from a submission sheet",
		Long: `vlaboard reads the VLA submission spreadsheet, merges every model's
results and writes ranked leaderboards for LIBERO, LIBERO-Plus,
Meta-World and CALVIN.

Configuration is layered: defaults, then the YAML file given by --config
or VLAB_CONFIG, then VLAB_* environment variables, then flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML config file")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newBuildCmd(c), newServeCmd(c), newSampleCmd(c))
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context(), c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
	}
	if err := overrides(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.cfg = cfg
	return nil
}

// overrides copies every flag the user set onto cfg.
func overrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}
	set("input", func() (e error) { cfg.Input, e = flags.GetString("input"); return })
	set("output", func() (e error) { cfg.OutputDir, e = flags.GetString("output"); return })
	set("sheet", func() (e error) { cfg.Sheet, e = flags.GetString("sheet"); return })
	set("workers", func() (e error) { cfg.Workers, e = flags.GetInt("workers"); return })
	set("top-n", func() (e error) { cfg.TopN, e = flags.GetInt("top-n"); return })
	set("policy", func() (e error) { cfg.MergePolicy, e = flags.GetString("policy"); return })
	set("metrics-file", func() (e error) { cfg.MetricsFile, e = flags.GetString("metrics-file"); return })
	set("addr", func() (e error) { cfg.Addr, e = flags.GetString("addr"); return })
	set("watch", func() (e error) { cfg.Watch, e = flags.GetBool("watch"); return })
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	return nil
}

// pipelineFlags registers the flags shared by build and serve.
func pipelineFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("input", "", "submission sheet (.csv, .xlsx or .xlsm)")
	flags.String("output", "", "directory receiving the leaderboard JSON files")
	flags.String("sheet", "", "workbook sheet; empty reads the first one")
	flags.Int("workers", 0, "concurrent row extraction workers")
	flags.Int("top-n", 0, "leaders listed per leaderboard in data.json")
	flags.String("policy", "", "merge policy: last_original_wins or first_original_wins")
	flags.String("metrics-file", "", "write a Prometheus textfile after each build")
}
