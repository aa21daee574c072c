// Package cli implements the reelbook command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stsysd/reelbook/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	DataDir string
	Backend string

	config *config.Config
	logger *log.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command. Flag defaults come from cfg, so
// flags override the config file and the environment.
func NewRootCommand(cfg *config.Config, logger *log.Logger) *cobra.Command {
	if logger == nil {
		logger = log.Default()
	}
	opts := &RootOptions{config: cfg, logger: logger}

	cmd := &cobra.Command{
		Use:           "reelbook",
		Short:         "Track post-production of wedding films",
		Long:          "reelbook tracks wedding film projects through culling, speeches, the feature film and the short film.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg.DataDir = opts.DataDir
			cfg.Backend = opts.Backend
			if opts.Verbose {
				logger.SetLevel(log.DebugLevel)
			}
			if err := cfg.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", cfg.DataDir, "data directory")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", cfg.Backend, "storage backend (sqlite|bolt|memory)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewTaskCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}
