// Package report renders analysis results as human-readable text and as a
// machine-readable JSON export.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/model"
	"github.com/shebe-dev/mcplens/internal/recommend"
)

// rawSampleSize bounds the raw classified message sample at the end of the
// error report.
const rawSampleSize = 15

// rawSampleWidth is the truncation width for sampled messages.
const rawSampleWidth = 70

// breakdownTop bounds the per-tool breakdown table in the session report.
const breakdownTop = 20

// Errors writes the human-readable error analysis report to w.
func Errors(w io.Writer, stats *aggregate.ErrorStats, recs []model.Recommendation) {
	banner(w, "SHEBE MCP ERROR ANALYSIS")

	fmt.Fprintf(w, "\nTotal errors analyzed: %d\n", stats.TotalErrors)

	if len(stats.ByTool) > 0 {
		fmt.Fprintln(w, "\nErrors by tool:")
		tbl := NewTable(w, "TOOL", "COUNT")
		for _, r := range aggregate.RankCounts(stats.ByTool) {
			tbl.Row(r.Name, fmt.Sprintf("%d", r.Count))
		}
		tbl.Flush()
	}

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(w, "\nErrors by category:")
		tbl := NewTable(w, "CATEGORY", "COUNT")
		for _, r := range aggregate.RankCounts(stats.CategoryCounts()) {
			tbl.Row(r.Name, fmt.Sprintf("%d", r.Count))
		}
		tbl.Flush()
	}

	banner(w, "IMPROVEMENT RECOMMENDATIONS")
	if len(recs) == 0 {
		fmt.Fprintln(w, "\nNo recommendations: no categorized failures found.")
	}
	for i, rec := range recs {
		fmt.Fprintf(w, "\n%d. [%s] %s\n", i+1, rec.Priority, rec.Category)
		fmt.Fprintf(w, "   Issue: %s\n", rec.Issue)
		if len(rec.Examples) > 0 {
			n := len(rec.Examples)
			if n > 3 {
				n = 3
			}
			fmt.Fprintf(w, "   Examples: %v\n", rec.Examples[:n])
		}
		fmt.Fprintf(w, "   Recommendation: %s\n", rec.Recommendation)
		fmt.Fprintln(w, "   Implementation steps:")
		for _, step := range rec.Implementation {
			fmt.Fprintf(w, "     - %s\n", step)
		}
	}

	banner(w, "QUERY SYNTAX ERRORS (Sample)")
	sample := stats.InCategory(model.CategoryQuerySyntax)
	if len(sample) > rawSampleSize {
		sample = sample[:rawSampleSize]
	}
	for _, ce := range sample {
		text := ce.Fields["query"]
		if text == "" {
			text = ce.Message
		}
		fmt.Fprintf(w, "  [%s] %s\n", ce.Subcategory, truncate(text, rawSampleWidth))
	}
}

// Sessions writes the session comparison report to w.
func Sessions(w io.Writer, rep aggregate.SessionReport, v recommend.Verdict) {
	banner(w, "SERENA vs SHEBE CONTEXT USAGE ANALYSIS")

	d := rep.Distribution
	fmt.Fprintln(w, "\nSession distribution:")
	fmt.Fprintf(w, "  Total sessions analyzed:    %d\n", d.Total)
	fmt.Fprintf(w, "  Sessions with serena only:  %d\n", d.SerenaOnly)
	fmt.Fprintf(w, "  Sessions with shebe only:   %d\n", d.ShebeOnly)
	fmt.Fprintf(w, "  Sessions with both:         %d\n", d.Both)
	fmt.Fprintf(w, "  Sessions with neither:      %d\n", d.Neither)

	writeGroup(w, "Serena sessions", rep.SerenaSessions)
	writeGroup(w, "Shebe sessions", rep.ShebeSessions)
	writeGroup(w, "No MCP sessions (baseline)", rep.NoMCPSessions)

	c := rep.Comparison
	fmt.Fprintln(w, "\nComparison:")
	fmt.Fprintf(w, "  Avg log size (serena):      %s\n", kb(c.AvgLogSizeSerenaKB))
	fmt.Fprintf(w, "  Avg log size (shebe):       %s\n", kb(c.AvgLogSizeShebeKB))
	fmt.Fprintf(w, "  Avg log size (no mcp):      %s\n", kb(c.AvgLogSizeNoMCPKB))
	fmt.Fprintf(w, "  Serena/Shebe size ratio:    %.2fx\n", c.SerenaShebeSizeRatio)
	fmt.Fprintf(w, "  Avg serena calls/session:   %.1f\n", c.AvgSerenaCalls)
	fmt.Fprintf(w, "  Avg shebe calls/session:    %.1f\n", c.AvgShebeCalls)

	if len(rep.ToolBreakdown) > 0 {
		fmt.Fprintf(w, "\nTool call breakdown (top %d):\n", breakdownTop)
		tbl := NewTable(w, "TOOL", "CALLS", "SESSIONS")
		for i, t := range rep.ToolBreakdown {
			if i == breakdownTop {
				break
			}
			tbl.Row(t.Tool, fmt.Sprintf("%d", t.TotalCalls), fmt.Sprintf("%d", t.SessionsUsed))
		}
		tbl.Flush()
	}

	banner(w, "ANALYSIS CONCLUSIONS")
	fmt.Fprintf(w, "\n[FINDING] %s\n", v.Finding)
	fmt.Fprintf(w, "\nRECOMMENDATION: %s\n", v.Recommendation)
}

func writeGroup(w io.Writer, label string, gs aggregate.GroupStats) {
	fmt.Fprintf(w, "\n%s:\n", label)
	fmt.Fprintf(w, "  Count:                %d\n", gs.Count)
	if gs.Count == 0 {
		return
	}
	fmt.Fprintf(w, "  Total log size:       %s\n", humanize.IBytes(uint64(gs.TotalFileSizeMB*1024*1024)))
	fmt.Fprintf(w, "  Avg log size:         %s\n", kb(gs.AvgFileSizeKB))
	fmt.Fprintf(w, "  Avg tool calls:       %.1f\n", gs.AvgToolCalls)
	fmt.Fprintf(w, "  Estimated avg tokens: %s\n", humanize.Comma(int64(gs.EstimatedAvgTokens)))
}

// kb renders a kilobyte average through humanize for consistent sizing.
func kb(v float64) string {
	return humanize.IBytes(uint64(v * 1024))
}
