package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/model"
	"github.com/shebe-dev/mcplens/internal/pipeline"
	"github.com/shebe-dev/mcplens/internal/recommend"
)

// DefaultFileName is the fixed name of the JSON export.
const DefaultFileName = "mcp-analysis.json"

// Summary holds the top-level counts of the export document.
type Summary struct {
	TotalErrors int            `json:"total_errors"`
	ByTool      map[string]int `json:"by_tool"`
	ByCategory  map[string]int `json:"by_category"`
}

// Export is the machine-readable analysis document.
type Export struct {
	RunID             string                    `json:"run_id"`
	GeneratedAt       time.Time                 `json:"generated_at"`
	LogDir            string                    `json:"log_dir"`
	FilesAnalyzed     int                       `json:"files_analyzed"`
	Summary           Summary                   `json:"summary"`
	QuerySyntaxErrors []model.ClassifiedError   `json:"query_syntax_errors"`
	SessionErrors     []model.ClassifiedError   `json:"session_errors"`
	FileErrors        []model.ClassifiedError   `json:"file_errors"`
	OtherErrors       []model.ClassifiedError   `json:"other_errors"`
	ToolNotFound      []aggregate.NotFoundError `json:"tool_not_found"`
	Improvements      []model.Recommendation    `json:"improvements"`
	Sessions          aggregate.SessionReport   `json:"sessions"`
	Verdict           recommend.Verdict         `json:"verdict"`
}

// NewExport assembles the export document for one run. Each export carries
// a fresh run id and generation timestamp.
func NewExport(res *pipeline.Result) Export {
	return Export{
		RunID:             uuid.New().String(),
		GeneratedAt:       time.Now().UTC(),
		LogDir:            res.LogDir,
		FilesAnalyzed:     res.Files,
		Summary:           NewSummary(res.Errors),
		QuerySyntaxErrors: classified(res.Errors, model.CategoryQuerySyntax),
		SessionErrors:     classified(res.Errors, model.CategorySession),
		FileErrors:        classified(res.Errors, model.CategoryFileAccess),
		OtherErrors:       classified(res.Errors, model.CategoryOther),
		ToolNotFound:      notFound(res.Errors),
		Improvements:      improvements(res.Recommendations),
		Sessions:          sessionsReport(res.Sessions),
		Verdict:           res.Verdict,
	}
}

// NewSummary builds the summary block from aggregated error statistics.
func NewSummary(stats *aggregate.ErrorStats) Summary {
	return Summary{
		TotalErrors: stats.TotalErrors,
		ByTool:      stats.ByTool,
		ByCategory:  stats.CategoryCounts(),
	}
}

// WriteJSON writes the export as indented JSON to w.
func WriteJSON(w io.Writer, ex Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ex)
}

// WriteFile writes the export to path. This is the one pipeline failure
// treated as fatal.
func WriteFile(path string, ex Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, ex); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// OutputPath returns the export destination: overrideDir when configured,
// otherwise the directory of the running executable, falling back to the
// working directory.
func OutputPath(overrideDir string) string {
	if overrideDir != "" {
		return filepath.Join(overrideDir, DefaultFileName)
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), DefaultFileName)
	}
	return DefaultFileName
}

// classified returns the category's errors with a non-nil slice so empty
// buckets marshal as [] rather than null.
func classified(stats *aggregate.ErrorStats, cat string) []model.ClassifiedError {
	if out := stats.InCategory(cat); out != nil {
		return out
	}
	return []model.ClassifiedError{}
}

func notFound(stats *aggregate.ErrorStats) []aggregate.NotFoundError {
	if stats.NotFound != nil {
		return stats.NotFound
	}
	return []aggregate.NotFoundError{}
}

func improvements(recs []model.Recommendation) []model.Recommendation {
	if recs != nil {
		return recs
	}
	return []model.Recommendation{}
}

func sessionsReport(rep aggregate.SessionReport) aggregate.SessionReport {
	if rep.ToolBreakdown == nil {
		rep.ToolBreakdown = []aggregate.ToolUsage{}
	}
	return rep
}
