// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/csrprep/pipeline"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string // YAML pipeline config; defaults apply when empty
	logLevel   string // overrides log_level from the config when set
}

func newRootCmd() *cobra.Command {
	ro := &rootOptions{}
	root := &cobra.Command{
		Use:           "csrprep",
		Short:         "Preprocess CSR matrices for sparse direct solvers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&ro.configPath, "config", "c", "", "pipeline config file (YAML)")
	root.PersistentFlags().StringVar(&ro.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newDemoCmd(ro), newBenchCmd(ro), newConfigCmd(ro))

	return root
}

// loadConfig resolves the effective pipeline config from the flags.
func (ro *rootOptions) loadConfig() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if ro.configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(ro.configPath); err != nil {
			return pipeline.Config{}, err
		}
	}
	if ro.logLevel != "" {
		cfg.LogLevel = ro.logLevel
	}

	return cfg, cfg.Validate()
}

// newLogger writes text logs to the command's stderr.
func newLogger(cmd *cobra.Command, cfg pipeline.Config) (*slog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})), nil
}

func newConfigCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective pipeline configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ro.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()

			return enc.Encode(cfg)
		},
	}
}
