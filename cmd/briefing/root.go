package main

import (
	"fmt"
	"os"

	"github.com/abelbrown/briefing/internal/logging"
	"github.com/spf13/cobra"
)

var (
	commit = "none"
	date   = "unknown"
)

var (
	flagConfig    string
	flagDB        string
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Daily news briefing in the terminal",
	Long: "briefing asks a search-grounded model for a short, cited news summary on a topic " +
		"and lets you keep the ones worth rereading.",
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.briefing/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the saved briefings database")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep saved briefings in memory only")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(eventsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "briefing %s (commit: %s, built: %s)\n", logging.Version, commit, date)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
