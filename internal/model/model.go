// Package model defines core types for mcplens: log events extracted from
// debug logs, classified tool failures, per-session usage statistics, and
// improvement recommendations.
package model

// Failure taxonomy categories.
const (
	CategoryQuerySyntax = "query_syntax"
	CategorySession     = "session"
	CategoryFileAccess  = "file_access"
	CategoryOther       = "other"
)

// Recommendation priority levels.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// EventKind discriminates the EventRecord variants.
type EventKind int

const (
	// KindToolFailure is a tool call that failed with an error message.
	KindToolFailure EventKind = iota
	// KindToolNotFound is a call to a tool no running server exposed.
	KindToolNotFound
	// KindToolCallStarted is an MCP server beginning a tool invocation.
	KindToolCallStarted
	// KindToolCallCompleted is an MCP tool invocation that finished.
	KindToolCallCompleted
	// KindToolCallFailed is an MCP tool invocation that failed.
	KindToolCallFailed
	// KindBuiltinToolUsed is a direct use of a built-in assistant tool.
	KindBuiltinToolUsed
)

// EventRecord is one structured event extracted from a single log line.
// Extraction never merges lines: every record traces back to exactly one
// source line.
type EventRecord struct {
	Kind     EventKind
	Provider string // MCP server name, set for the ToolCall* kinds
	Tool     string
	Message  string // raw failure message, set for KindToolFailure
}

// ClassifiedError is a tool failure placed into the failure taxonomy.
// Fields holds substrings captured during classification (session id,
// field name, file path, query text).
type ClassifiedError struct {
	Tool        string            `json:"tool"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory"`
	Fields      map[string]string `json:"fields,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// CompositeKey returns the "<category>_<subcategory>" grouping key used by
// the aggregator.
func (c ClassifiedError) CompositeKey() string {
	return c.Category + "_" + c.Subcategory
}

// SessionStats aggregates tool usage for a single debug-log document.
// EstimatedTokens is a linear approximation derived from the file size,
// not exact token accounting.
type SessionStats struct {
	SessionID       string   `json:"session_id"`
	FileSizeBytes   int64    `json:"file_size_bytes"`
	EstimatedTokens int64    `json:"estimated_tokens"`
	ShebeCalls      int      `json:"shebe_calls"`
	SerenaCalls     int      `json:"serena_calls"`
	OtherMCPCalls   int      `json:"other_mcp_calls"`
	BuiltinCalls    int      `json:"builtin_calls"`
	HasShebe        bool     `json:"has_shebe"`
	HasSerena       bool     `json:"has_serena"`
	ToolCalls       []string `json:"tool_calls,omitempty"` // qualified names, e.g. shebe__search_code
}

// Recommendation is one prioritized improvement suggestion produced from
// aggregated failure statistics.
type Recommendation struct {
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	Issue          string   `json:"issue"`
	Examples       []string `json:"examples,omitempty"`
	Recommendation string   `json:"recommendation"`
	Implementation []string `json:"implementation"`
}
