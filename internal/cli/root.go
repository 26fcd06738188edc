// Package cli defines the cobra command tree for the mcplens CLI.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shebe-dev/mcplens/internal/config"
)

var jsonOutput bool

// configPath is the path to the config file, settable for testing.
var configPath = config.Path()

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".claude", "debug")
	}
	return filepath.Join(home, ".claude", "debug")
}

// rootCmd is the top-level mcplens command. Run bare, it performs the full
// analysis: error classification, recommendations, and the session context
// comparison, then writes the JSON export.
var rootCmd = &cobra.Command{
	Use:   "mcplens [log-dir]",
	Short: "Analyze AI assistant debug logs for MCP tool failure patterns",
	Long: `mcplens parses AI coding-assistant debug logs to surface recurring
failure patterns from shebe and serena MCP tool calls, classify each failure
into a fixed taxonomy, and produce prioritized improvement recommendations.

The optional positional argument is the log directory; it defaults to
~/.claude/debug (configurable via mcplens config log_dir). A missing
directory produces an empty report, not a failure. Alongside the text
report, a JSON export is written next to the mcplens executable
(configurable via mcplens config output_dir).`,
	Example: `  # Analyze the default debug log directory
  mcplens

  # Analyze a specific directory
  mcplens /tmp/debug-logs

  # Machine-readable output on stdout instead of the text report
  mcplens --json

  # Run only one half of the analysis
  mcplens errors
  mcplens sessions`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return
		}
		if cfg.DefaultFormat == "json" && !cmd.Flags().Changed("json") {
			jsonOutput = true
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFull(args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}

// resolveLogDir picks the log directory: positional argument first, then
// the configured log_dir, then the default.
func resolveLogDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg, err := config.LoadFrom(configPath); err == nil && cfg.LogDir != "" {
		return cfg.LogDir
	}
	return defaultLogDir()
}

// outputDir returns the configured export directory, empty for the default.
func outputDir() string {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return ""
	}
	return cfg.OutputDir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
