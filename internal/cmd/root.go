// Package cmd implements the autocomplete command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "autocomplete",
	Short: "search-as-you-type picker for the terminal",
	Long: `autocomplete - search-as-you-type picker for the terminal
  - pick a line from stdin, a file, a command or a SQLite query
  - complete the token under the caret with --token`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "autocomplete %s\n", Version)
		fmt.Fprintf(out, "  commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  built:  %s\n", BuildDate)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/autocomplete/config.yaml)")

	rootCmd.AddCommand(newPickCmd(&pickOpts{}))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(versionCmd)
}
