package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/model"
	"github.com/shebe-dev/mcplens/internal/report"
)

var errorsCmd = &cobra.Command{
	Use:   "errors [log-dir]",
	Short: "Show the error classification report only",
	Long: `Errors runs the failure-classification half of the analysis: every
shebe tool failure found in the logs is classified into the taxonomy
(query_syntax, session, file_access, other) and reported with ranked tool
and category tables plus improvement recommendations.`,
	Example: `  mcplens errors
  mcplens errors /tmp/debug-logs
  mcplens errors --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := analyze(args)
		if err != nil {
			return err
		}

		if jsonOutput {
			// Reuse the full export so empty buckets stay [] rather
			// than null, then trim to the error half.
			ex := report.NewExport(res)
			out := struct {
				Summary           report.Summary            `json:"summary"`
				QuerySyntaxErrors []model.ClassifiedError   `json:"query_syntax_errors"`
				SessionErrors     []model.ClassifiedError   `json:"session_errors"`
				FileErrors        []model.ClassifiedError   `json:"file_errors"`
				OtherErrors       []model.ClassifiedError   `json:"other_errors"`
				ToolNotFound      []aggregate.NotFoundError `json:"tool_not_found"`
				Improvements      []model.Recommendation    `json:"improvements"`
			}{
				Summary:           ex.Summary,
				QuerySyntaxErrors: ex.QuerySyntaxErrors,
				SessionErrors:     ex.SessionErrors,
				FileErrors:        ex.FileErrors,
				OtherErrors:       ex.OtherErrors,
				ToolNotFound:      ex.ToolNotFound,
				Improvements:      ex.Improvements,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		report.Errors(os.Stdout, res.Errors, res.Recommendations)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(errorsCmd)
}
