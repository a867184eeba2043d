// Package cli implements the connectorctl command tree.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "connectorctl",
	Short: "Inspect and exercise SaaS connector configuration",
	Long: `connectorctl is a companion tool for the connectors library.

It validates per-provider policy files, lists the available providers,
and probes provider endpoints for reachability.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config.toml (default ~/.connectors/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// newLogger builds the CLI logger honoring the verbose flag.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
