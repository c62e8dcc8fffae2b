// Package app contains the Cobra command tree for aw-analyzer.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aw-analyzer/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with the
// ldflags-injected value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "aw-analyzer",
	Short: "Personal-activity analytics agent for ActivityWatch",
	Long: `aw-analyzer pulls activity events from a local ActivityWatch-style
server, evaluates rule-based jobs on a cadence, and dispatches desktop
toasts and chat reports.

Run 'aw-analyzer tick' on a schedule to evaluate jobs once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetNoColor(flagNoColor)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("aw-analyzer", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  tick            Run registered jobs once")
		fmt.Println("  weekly-report   Run the multi-day report pipeline")
		fmt.Println("  reset           Clear persistent state")
		fmt.Println("  trend           Show metric trends from the history store")
		fmt.Println("  install         Write an OS-level scheduler descriptor")
		fmt.Println("  uninstall       Remove the scheduler descriptor")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.aw-analyzer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}
