// Package classify places tool-failure messages into the failure taxonomy.
//
// Classification is total and deterministic: rules are evaluated in a fixed
// order, the first match wins, and every message lands in exactly one
// bucket, including the other/unknown catch-all.
package classify

import (
	"strings"

	"github.com/shebe-dev/mcplens/internal/extract"
	"github.com/shebe-dev/mcplens/internal/model"
)

// rule is one ordered classification step. match returns the subcategory
// and any captured fields when the message has the rule's shape.
type rule struct {
	category string
	match    func(msg string) (sub string, fields map[string]string, ok bool)
}

// rules is the fixed evaluation order. Later rules are never evaluated
// once one matches: a message matching the unknown-field shape is
// field_prefix even if it also contains "Unsupported query".
var rules = []rule{
	{model.CategoryQuerySyntax, matchSyntax},
	{model.CategoryQuerySyntax, matchUnknownField},
	{model.CategorySession, matchSessionExists},
	{model.CategorySession, matchOldSchema},
	{model.CategoryFileAccess, matchFileNotIndexed},
	{model.CategoryQuerySyntax, matchUnsupportedQuery},
	{model.CategoryFileAccess, matchResponseTooLarge},
	{model.CategorySession, matchInvalidSessionName},
}

// Classify assigns a tool-failure message to exactly one taxonomy bucket.
func Classify(tool, message string) model.ClassifiedError {
	for _, r := range rules {
		sub, fields, ok := r.match(message)
		if !ok {
			continue
		}
		return model.ClassifiedError{
			Tool:        tool,
			Category:    r.category,
			Subcategory: sub,
			Fields:      withMCPCode(fields, message),
			Message:     message,
		}
	}
	return model.ClassifiedError{
		Tool:        tool,
		Category:    model.CategoryOther,
		Subcategory: "unknown",
		Fields:      withMCPCode(nil, message),
		Message:     message,
	}
}

// withMCPCode records the generic MCP error code when the message carries
// one. The code never influences the category.
func withMCPCode(fields map[string]string, message string) map[string]string {
	code, _, ok := extract.MatchMCPError(message)
	if !ok {
		return fields
	}
	if fields == nil {
		fields = make(map[string]string, 1)
	}
	fields["mcp_code"] = code
	return fields
}

func matchSyntax(msg string) (string, map[string]string, bool) {
	q, ok := extract.MatchSyntaxError(msg)
	if !ok {
		return "", nil, false
	}
	q = strings.TrimSpace(q)
	return ClassifyQuery(q), map[string]string{"query": q}, true
}

func matchUnknownField(msg string) (string, map[string]string, bool) {
	f, ok := extract.MatchUnknownField(msg)
	if !ok {
		return "", nil, false
	}
	return "field_prefix", map[string]string{"field": f, "query": f + ":..."}, true
}

func matchSessionExists(msg string) (string, map[string]string, bool) {
	s, ok := extract.MatchSessionExists(msg)
	if !ok {
		return "", nil, false
	}
	return "session_exists", map[string]string{"session": s}, true
}

func matchOldSchema(msg string) (string, map[string]string, bool) {
	s, v, ok := extract.MatchOldSchema(msg)
	if !ok {
		return "", nil, false
	}
	return "schema_mismatch", map[string]string{"session": s, "old_version": v}, true
}

func matchFileNotIndexed(msg string) (string, map[string]string, bool) {
	p, s, ok := extract.MatchFileNotIndexed(msg)
	if !ok {
		return "", nil, false
	}
	return "file_not_indexed", map[string]string{"file": p, "session": s}, true
}

func matchUnsupportedQuery(msg string) (string, map[string]string, bool) {
	if !strings.Contains(msg, "Unsupported query") {
		return "", nil, false
	}
	return "unsupported_query", nil, true
}

func matchResponseTooLarge(msg string) (string, map[string]string, bool) {
	if !strings.Contains(msg, "exceeds maximum allowed tokens") {
		return "", nil, false
	}
	return "response_too_large", nil, true
}

func matchInvalidSessionName(msg string) (string, map[string]string, bool) {
	if !strings.Contains(msg, "Session must contain only") {
		return "", nil, false
	}
	return "invalid_session_name", nil, true
}
