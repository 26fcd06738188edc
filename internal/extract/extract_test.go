package extract

import (
	"reflect"
	"testing"

	"github.com/shebe-dev/mcplens/internal/model"
)

func TestRecords(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []model.EventRecord
	}{
		{
			name: "tool failure",
			line: `[ERROR] shebe: Tool 'search_code' failed with error: Syntax Error: /users/{id}/roles`,
			want: []model.EventRecord{
				{Kind: model.KindToolFailure, Tool: "search_code", Message: "Syntax Error: /users/{id}/roles"},
			},
		},
		{
			name: "tool not found",
			line: `Tool mcp__shebe__read_file not found`,
			want: []model.EventRecord{
				{Kind: model.KindToolNotFound, Tool: "mcp__shebe__read_file"},
			},
		},
		{
			name: "call started",
			line: `MCP server "serena": Calling MCP tool: find_symbol`,
			want: []model.EventRecord{
				{Kind: model.KindToolCallStarted, Provider: "serena", Tool: "find_symbol"},
			},
		},
		{
			name: "call completed",
			line: `MCP server "shebe": Tool 'search_code' completed`,
			want: []model.EventRecord{
				{Kind: model.KindToolCallCompleted, Provider: "shebe", Tool: "search_code"},
			},
		},
		{
			name: "builtin tool",
			line: `executePreToolHooks called for tool: Grep`,
			want: []model.EventRecord{
				{Kind: model.KindBuiltinToolUsed, Tool: "Grep"},
			},
		},
		{
			name: "failure shape on irrelevant line is gated out",
			line: `Tool 'some_other' failed with error: boom`,
			want: nil,
		},
		{
			name: "no pattern match yields nothing",
			line: `just an ordinary shebe log line`,
			want: nil,
		},
		{
			name: "empty line",
			line: ``,
			want: nil,
		},
		{
			name: "provider call failure yields call record and failure record",
			line: `MCP server "shebe": Tool 'read_file' failed with error: File 'a.go' not indexed in session 's'`,
			want: []model.EventRecord{
				{Kind: model.KindToolFailure, Tool: "read_file", Message: "File 'a.go' not indexed in session 's'"},
				{Kind: model.KindToolCallFailed, Provider: "shebe", Tool: "read_file"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Records(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Records(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRecordsFileOrder(t *testing.T) {
	text := `MCP server "shebe": Calling MCP tool: index_repository
shebe: Tool 'index_repository' failed with error: Session 'proj' already exists
executePreToolHooks called for tool: Read`

	got := Records(text)
	wantKinds := []model.EventKind{
		model.KindToolCallStarted,
		model.KindToolFailure,
		model.KindBuiltinToolUsed,
	}
	if len(got) != len(wantKinds) {
		t.Fatalf("Records returned %d records, want %d: %+v", len(got), len(wantKinds), got)
	}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Errorf("record %d kind = %d, want %d", i, got[i].Kind, k)
		}
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"calling SHEBE tool", true},
		{"Tool mcp__shebe__search_code not found", true},
		{"serena verbose output", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Relevant(tt.line); got != tt.want {
			t.Errorf("Relevant(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestMatchMCPError(t *testing.T) {
	code, msg, ok := MatchMCPError(`MCP error -32602: Invalid params"`)
	if !ok || code != "-32602" || msg != "Invalid params" {
		t.Errorf("MatchMCPError = (%q, %q, %v), want (-32602, Invalid params, true)", code, msg, ok)
	}
	if _, _, ok := MatchMCPError("no envelope here"); ok {
		t.Error("MatchMCPError matched a line without an envelope")
	}
}
