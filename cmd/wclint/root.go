package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/wclint/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "wclint",
	Short: "wclint - custom-element markup validator",
	Long: `wclint validates custom-element markup against custom elements manifests.

It builds a schema index from the manifest sources declared in the
configuration and reports diagnostics for:
  - Unknown custom elements and unknown attributes
  - Invalid boolean, number, and enumerated attribute values
  - Deprecated elements and attributes
  - Duplicate attributes

Inline comment directives (wclint-disable-file, wclint-disable,
wclint-disable-next-element) suppress diagnostics per file, per region,
or per element.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		if _, err := logging.Setup(logging.Config{Level: level, Format: logFormat}); err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "wclint.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
}
