// Package cmd implements the CLI commands for designpipe using Cobra.
package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "designpipe",
	Short: "designpipe: convert Figma designs into static HTML and CSS",
	Long: `designpipe is a deterministic conversion pipeline that turns a Figma design
into static HTML markup and a CSS stylesheet that reproduce its geometry,
colours and typography.

Usage:
  designpipe convert <figma-url-or-key> [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if flagVerbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./designpipe.toml if present)")
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
