package cli

import (
	"fmt"
	"os"

	"github.com/shebe-dev/mcplens/internal/pipeline"
	"github.com/shebe-dev/mcplens/internal/report"
)

// runFull performs the complete analysis: text report (or JSON on stdout)
// plus the JSON export file.
func runFull(args []string) error {
	res, err := analyze(args)
	if err != nil {
		return err
	}

	ex := report.NewExport(res)
	if jsonOutput {
		return report.WriteJSON(os.Stdout, ex)
	}

	report.Errors(os.Stdout, res.Errors, res.Recommendations)
	report.Sessions(os.Stdout, res.Sessions, res.Verdict)

	outPath := report.OutputPath(outputDir())
	if err := report.WriteFile(outPath, ex); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("\nJSON report exported to: %s\n", outPath)
	return nil
}

// analyze runs the pipeline over the resolved log directory. A missing
// directory is reported to the operator and yields an empty result; the
// command still exits 0.
func analyze(args []string) (*pipeline.Result, error) {
	dir := resolveLogDir(args)
	if !jsonOutput {
		fmt.Printf("Analyzing debug logs in: %s\n", dir)
	}

	res, err := pipeline.Run(dir, os.Stderr)
	if err != nil {
		return nil, err
	}
	if !jsonOutput {
		if res.MissingDir {
			fmt.Printf("Debug directory not found: %s\n", dir)
		} else {
			fmt.Printf("Analyzing %d debug log files...\n", res.Files)
		}
	}
	return res, nil
}
