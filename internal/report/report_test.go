package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/model"
	"github.com/shebe-dev/mcplens/internal/pipeline"
	"github.com/shebe-dev/mcplens/internal/recommend"
)

func emptyResult() *pipeline.Result {
	return &pipeline.Result{
		LogDir: "/tmp/logs",
		Errors: aggregate.NewErrorStats(),
	}
}

func TestNewExportEmptySlices(t *testing.T) {
	ex := NewExport(emptyResult())

	var buf bytes.Buffer
	if err := WriteJSON(&buf, ex); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "null") {
		t.Errorf("export contains null collections:\n%s", out)
	}
	if ex.RunID == "" {
		t.Error("RunID should be set")
	}
	if ex.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
}

func TestNewExportBuckets(t *testing.T) {
	res := emptyResult()
	res.Files = 2
	res.Errors.AddFailure(model.ClassifiedError{
		Tool: "search_code", Category: model.CategoryQuerySyntax, Subcategory: "url_pattern",
	})
	res.Errors.AddFailure(model.ClassifiedError{
		Tool: "index_repository", Category: model.CategorySession, Subcategory: "session_exists",
	})
	res.Errors.AddToolNotFound("mcp__shebe__read_file")

	ex := NewExport(res)
	if ex.FilesAnalyzed != 2 {
		t.Errorf("FilesAnalyzed = %d, want 2", ex.FilesAnalyzed)
	}
	if ex.Summary.TotalErrors != 3 {
		t.Errorf("Summary.TotalErrors = %d, want 3", ex.Summary.TotalErrors)
	}
	if len(ex.QuerySyntaxErrors) != 1 || len(ex.SessionErrors) != 1 {
		t.Errorf("buckets = %d query, %d session, want 1 each",
			len(ex.QuerySyntaxErrors), len(ex.SessionErrors))
	}
	if len(ex.FileErrors) != 0 || len(ex.OtherErrors) != 0 {
		t.Errorf("empty buckets not empty: %d file, %d other",
			len(ex.FileErrors), len(ex.OtherErrors))
	}
	if len(ex.ToolNotFound) != 1 {
		t.Errorf("ToolNotFound = %+v, want 1 entry", ex.ToolNotFound)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	ex := NewExport(emptyResult())
	if err := WriteFile(path, ex); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back Export
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if back.RunID != ex.RunID || back.LogDir != ex.LogDir {
		t.Errorf("round trip mismatch: %+v vs %+v", back, ex)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("/data/reports"); got != filepath.Join("/data/reports", DefaultFileName) {
		t.Errorf("OutputPath(override) = %q", got)
	}
	got := OutputPath("")
	if filepath.Base(got) != DefaultFileName {
		t.Errorf("OutputPath(\"\") = %q, want file named %q", got, DefaultFileName)
	}
}

func TestErrorsText(t *testing.T) {
	stats := aggregate.NewErrorStats()
	stats.AddFailure(model.ClassifiedError{
		Tool:        "search_code",
		Category:    model.CategoryQuerySyntax,
		Subcategory: "url_pattern",
		Fields:      map[string]string{"query": "/users/{id}/roles"},
		Message:     "Syntax Error: /users/{id}/roles",
	})
	recs := recommend.Build(stats)

	var buf bytes.Buffer
	Errors(&buf, stats, recs)
	out := buf.String()

	for _, want := range []string{
		"SHEBE MCP ERROR ANALYSIS",
		"Total errors analyzed: 1",
		"search_code",
		"query_syntax_url_pattern",
		"IMPROVEMENT RECOMMENDATIONS",
		"1. [HIGH] Query Parsing - URL Patterns",
		"QUERY SYNTAX ERRORS (Sample)",
		"[url_pattern] /users/{id}/roles",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("error report missing %q:\n%s", want, out)
		}
	}
	// Piped output carries no ANSI escapes.
	if strings.Contains(out, "\033[") {
		t.Error("error report contains ANSI escapes for non-TTY writer")
	}
}

func TestErrorsTextNoRecommendations(t *testing.T) {
	var buf bytes.Buffer
	Errors(&buf, aggregate.NewErrorStats(), nil)
	if !strings.Contains(buf.String(), "No recommendations") {
		t.Errorf("empty report missing no-recommendations notice:\n%s", buf.String())
	}
}

func TestSessionsText(t *testing.T) {
	sessions := []model.SessionStats{
		{SessionID: "a", FileSizeBytes: 20480, EstimatedTokens: 5120,
			HasSerena: true, SerenaCalls: 2, ToolCalls: []string{"serena__find_symbol", "serena__find_symbol"}},
		{SessionID: "b", FileSizeBytes: 10240, EstimatedTokens: 2560,
			HasShebe: true, ShebeCalls: 1, ToolCalls: []string{"shebe__search_code"}},
	}
	rep := aggregate.Compare(sessions)
	v := recommend.CompareVerdict(rep.Comparison)

	var buf bytes.Buffer
	Sessions(&buf, rep, v)
	out := buf.String()

	for _, want := range []string{
		"SERENA vs SHEBE CONTEXT USAGE ANALYSIS",
		"Total sessions analyzed:    2",
		"Serena sessions",
		"Serena/Shebe size ratio:    2.00x",
		"serena__find_symbol",
		"ANALYSIS CONCLUSIONS",
		"[FINDING]",
		"RECOMMENDATION: Proceed with shebe find_references implementation.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("session report missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long message indeed", 10, "a very ..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
