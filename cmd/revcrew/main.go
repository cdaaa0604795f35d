// Command revcrew is the CLI surface for the multi-agent code review
// orchestrator: a thin driver over internal/pipeline.
//
// Grounded on cmd/nerd/main.go's rootCmd/PersistentPreRunE shape
// (global flags, a zap logger built once in PersistentPreRunE,
// flushed in PersistentPostRun) and cmd_spawn.go/cmd_direct_actions.go
// for subcommand layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codenerd-labs/revcrew/internal/logging"
)

var (
	configPath string
	cacheSize  int
	timeoutStr string
	offline    bool
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "revcrew",
	Short: "Multi-agent code review orchestrator",
	Long: `revcrew dispatches a changed file to parallel specialist review
agents (security, quality, performance, testing, documentation, style),
fuses their findings, and reduces them to a verdict: approve, comment,
or reject.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose, jsonOutput); err != nil {
			return fmt.Errorf("revcrew: init logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache-size", 0, "override the result cache capacity (0 keeps config default)")
	rootCmd.PersistentFlags().StringVar(&timeoutStr, "timeout", "", "override the per-agent timeout, e.g. 30s")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "force the deterministic MockGateway instead of calling an LLM")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit the full review state as JSON instead of one summary line per file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(reviewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
