package extract

import (
	"regexp"
	"strings"
)

// Log-line shape patterns, precompiled for reuse. Matching is line-scoped
// and case-sensitive; patterns are independent and may overlap.
var (
	reToolFailed     = regexp.MustCompile(`Tool '(\w+)' failed.*?: (.+)`)
	reMCPError       = regexp.MustCompile(`MCP error (-?\d+): (.+?)(?:"|$)`)
	reSyntaxError    = regexp.MustCompile(`Syntax Error: (.+?)(?:"|$)`)
	reFieldNotExist  = regexp.MustCompile(`Field does not exist: '(\w+)'`)
	reSessionExists  = regexp.MustCompile(`Session '([^']+)' already exists`)
	reOldSchema      = regexp.MustCompile(`Session '([^']+)' uses old schema version (\d+)`)
	reFileNotIndexed = regexp.MustCompile(`File '([^']+)' not indexed in session '([^']+)'`)
	reToolNotFound   = regexp.MustCompile(`Tool (mcp__shebe__\w+) not found`)
	reCallStarted    = regexp.MustCompile(`MCP server "(\w+)": Calling MCP tool: (\w+)`)
	reCallCompleted  = regexp.MustCompile(`MCP server "(\w+)": Tool '(\w+)' completed`)
	reCallFailed     = regexp.MustCompile(`MCP server "(\w+)": Tool '(\w+)' failed`)
	reBuiltinTool    = regexp.MustCompile(`executePreToolHooks called for tool: (Read|Write|Edit|Glob|Grep|Bash|Task)`)
)

// relevanceGate is the case-insensitive substring that marks a line as
// belonging to the tool family under study.
const relevanceGate = "shebe"

// Relevant reports whether a line should be examined by the failure
// patterns at all. This is a noise filter, not a correctness requirement.
func Relevant(line string) bool {
	return strings.Contains(strings.ToLower(line), relevanceGate)
}

// MatchSyntaxError returns the query text captured from a
// "Syntax Error: <query>" message.
func MatchSyntaxError(s string) (query string, ok bool) {
	if m := reSyntaxError.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}

// MatchUnknownField returns the field name captured from a
// "Field does not exist: '<field>'" message.
func MatchUnknownField(s string) (field string, ok bool) {
	if m := reFieldNotExist.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}

// MatchSessionExists returns the session id captured from a
// "Session '<id>' already exists" message.
func MatchSessionExists(s string) (session string, ok bool) {
	if m := reSessionExists.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}

// MatchOldSchema returns the session id and schema version captured from a
// "Session '<id>' uses old schema version <n>" message.
func MatchOldSchema(s string) (session, version string, ok bool) {
	if m := reOldSchema.FindStringSubmatch(s); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// MatchFileNotIndexed returns the path and session id captured from a
// "File '<path>' not indexed in session '<id>'" message.
func MatchFileNotIndexed(s string) (path, session string, ok bool) {
	if m := reFileNotIndexed.FindStringSubmatch(s); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// MatchMCPError returns the signed error code and message captured from a
// generic "MCP error <code>: <message>" envelope.
func MatchMCPError(s string) (code, msg string, ok bool) {
	if m := reMCPError.FindStringSubmatch(s); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}
