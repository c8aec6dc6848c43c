package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revq/revq/internal/logging"
)

const version = "0.1.0"

// Exit codes. Only a configuration without a single usable server aborts
// the run; partial endpoint failures degrade to a smaller report.
const (
	ExitSuccess      = 0
	ExitNoServers    = 1
	ExitConfigError  = 2
	ExitRuntimeError = 4
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Persistent flags shared by every query command.
var (
	flagConfig     string
	flagUser       string
	flagServer     int
	flagAbandon    bool
	flagAbandonAge int
	flagForce      bool
	flagOutput     string
	flagFormat     string
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "revq",
	Short: "Multi-server Gerrit review dashboard",
	Long: "Revq queries every configured review server with one change query, " +
		"merges the results into a single risk-sorted report, and can abandon " +
		"stale changes with negative scores (dry-run by default).",
	// Bare `revq` behaves like `revq owned`.
	RunE: func(cmd *cobra.Command, args []string) error {
		return ownedCmd.RunE(cmd, args)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Query another user than self")
	rootCmd.PersistentFlags().IntVarP(&flagServer, "server", "s", -1, "Query a single server by index instead of all")
	rootCmd.PersistentFlags().BoolVarP(&flagAbandon, "abandon", "a", false,
		"Evaluate stale changes with negative score for abandonment (dry-run unless -f)")
	rootCmd.PersistentFlags().IntVarP(&flagAbandonAge, "abandon-age", "z", 0,
		"Number of days for which changes are subject to abandon (default 90)")
	rootCmd.PersistentFlags().BoolVarP(&flagForce, "force", "f", false, "Perform potentially destructive actions")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Filename to dump the report in as HTML")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Output format (table, json, html)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Debug logging")

	rootCmd.AddCommand(ownedCmd)
	rootCmd.AddCommand(incomingCmd)
	rootCmd.AddCommand(mergedCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitConfigError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print revq version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "revq version %s\n", version)
	},
}
