package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/recommend"
	"github.com/shebe-dev/mcplens/internal/report"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [log-dir]",
	Short: "Show the session context-usage comparison only",
	Long: `Sessions runs the context-usage half of the analysis: per-session
provider call counts, log-size and token estimates for the serena / shebe /
no-MCP session groups, the cross-group comparison ratio, and a conclusion
about whether a lightweight find_references tool is worth building.

Sessions that used neither tracked provider and made few builtin tool calls
are discarded as noise.`,
	Example: `  mcplens sessions
  mcplens sessions /tmp/debug-logs
  mcplens sessions --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := analyze(args)
		if err != nil {
			return err
		}

		if jsonOutput {
			ex := report.NewExport(res)
			out := struct {
				aggregate.SessionReport
				Verdict recommend.Verdict `json:"verdict"`
			}{ex.Sessions, ex.Verdict}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		report.Sessions(os.Stdout, res.Sessions, res.Verdict)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
