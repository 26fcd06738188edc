// Package recommend turns aggregated failure statistics into prioritized
// improvement recommendations via static threshold rules.
package recommend

import (
	"fmt"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/model"
)

// maxExamples bounds the example excerpts attached to a recommendation.
const maxExamples = 5

// Build maps non-empty category buckets to recommendations. Output order
// follows the fixed category ordering (query syntax, session, file access,
// tool availability), not occurrence counts. A bucket with zero
// occurrences never produces a recommendation.
func Build(stats *aggregate.ErrorStats) []model.Recommendation {
	var recs []model.Recommendation

	if bucket := stats.ByCategory["query_syntax_url_pattern"]; len(bucket) > 0 {
		recs = append(recs, model.Recommendation{
			Category: "Query Parsing - URL Patterns",
			Priority: model.PriorityHigh,
			Issue: fmt.Sprintf("%d queries failed with URL-like patterns (e.g., /users/{id}/roles)",
				len(bucket)),
			Examples:       fieldExamples(bucket, "query"),
			Recommendation: "Auto-quote queries containing URL path patterns. Detect patterns like /path/{param} and wrap in quotes.",
			Implementation: []string{
				"Add URL pattern detection in query preprocessing",
				`Auto-escape curly braces: {id} -> \{id\}`,
				"Consider supporting file_path: prefix for path searches",
				"Add helpful error message suggesting find_file for paths",
			},
		})
	}

	if bucket := stats.ByCategory["query_syntax_annotation"]; len(bucket) > 0 {
		recs = append(recs, model.Recommendation{
			Category: "Query Parsing - Code Annotations",
			Priority: model.PriorityMedium,
			Issue: fmt.Sprintf("%d queries failed with annotation patterns (e.g., @Router, @Param)",
				len(bucket)),
			Examples:       fieldExamples(bucket, "query"),
			Recommendation: "Handle @ symbol in queries by escaping or quoting",
			Implementation: []string{
				"Escape @ symbol in query preprocessing",
				"Document that annotations should be quoted",
				"Add @-pattern aware tokenization",
			},
		})
	}

	if bucket := stats.ByCategory["query_syntax_field_prefix"]; len(bucket) > 0 {
		recs = append(recs, model.Recommendation{
			Category: "Query Parsing - Field Prefixes",
			Priority: model.PriorityMedium,
			Issue: fmt.Sprintf("%d queries used non-existent field prefixes (e.g., file:, admin:)",
				len(bucket)),
			Examples:       fieldExamples(bucket, "field"),
			Recommendation: "Better error messages listing available fields, or auto-strip unknown field prefixes",
			Implementation: []string{
				"Return list of valid fields in error message",
				"Add content: as default field prefix",
				"Support file_path: field for filename searches",
				"Consider fuzzy matching for typos in field names",
			},
		})
	}

	if bucket := stats.ByCategory["query_syntax_special_chars"]; len(bucket) > 0 {
		recs = append(recs, model.Recommendation{
			Category:       "Query Parsing - Special Characters",
			Priority:       model.PriorityMedium,
			Issue:          fmt.Sprintf("%d queries failed due to special characters", len(bucket)),
			Examples:       fieldExamples(bucket, "query"),
			Recommendation: "Auto-escape or strip problematic characters",
			Implementation: []string{
				"Pre-process queries to escape [ ] { } characters",
				"Add literal search mode that escapes all special chars",
				"Document BM25 query syntax in tool description",
			},
		})
	}

	if bucket := stats.ByCategory["session_session_exists"]; len(bucket) > 0 {
		sessions := uniqueFieldValues(bucket, "session")
		recs = append(recs, model.Recommendation{
			Category: "Session Management - Auto Re-index",
			Priority: model.PriorityHigh,
			Issue: fmt.Sprintf("%d index_repository calls failed because session exists (%d unique sessions)",
				len(bucket), len(sessions)),
			Examples:       bound(sessions),
			Recommendation: "Change default behavior or improve UX for re-indexing",
			Implementation: []string{
				"Option 1: Default force=true for index_repository",
				"Option 2: Add smart_index tool that auto-detects need for re-index",
				"Option 3: Return session info instead of error when exists",
				"Option 4: Add check_session tool to verify if index is fresh",
				"Include last_indexed timestamp in error to help LLM decide",
			},
		})
	}

	if bucket := stats.ByCategory["session_schema_mismatch"]; len(bucket) > 0 {
		recs = append(recs, model.Recommendation{
			Category:       "Session Management - Schema Migration",
			Priority:       model.PriorityHigh,
			Issue:          fmt.Sprintf("%d operations failed due to schema version mismatch", len(bucket)),
			Examples:       bound(uniqueFieldValues(bucket, "session")),
			Recommendation: "Auto-migrate or provide clear migration path",
			Implementation: []string{
				"Add auto_migrate flag to search_code/read_file",
				"Add migrate_session tool for explicit upgrades",
				"Include schema version in list_sessions output",
				"On startup, log warning about outdated sessions",
				"Consider automatic background migration on first access",
			},
		})
	}

	if bucket := stats.ByCategory["file_access_file_not_indexed"]; len(bucket) > 0 {
		recs = append(recs, model.Recommendation{
			Category:       "File Access - Not Indexed",
			Priority:       model.PriorityMedium,
			Issue:          fmt.Sprintf("%d read_file calls failed for unindexed files", len(bucket)),
			Recommendation: "Better error recovery for unindexed files",
			Implementation: []string{
				"Return partial index info (was file excluded by patterns?)",
				"Suggest reindex with different include_patterns",
				"Add fallback_read option to read directly from disk",
				"Include exclude pattern that blocked file in error",
			},
		})
	}

	if n := stats.ByTool[aggregate.ToolNotFoundKey]; n > 0 {
		recs = append(recs, model.Recommendation{
			Category:       "Server Availability",
			Priority:       model.PriorityLow,
			Issue:          fmt.Sprintf("%d tool calls failed because server was not running", n),
			Recommendation: "Improve server startup/discovery",
			Implementation: []string{
				"Add health check endpoint for MCP clients",
				"Document auto-start configuration for Claude Code",
				"Consider lazy initialization on first tool call",
			},
		})
	}

	return recs
}

// fieldExamples collects the named captured field from the first
// maxExamples errors in a bucket, falling back to "unknown" when the field
// was not captured.
func fieldExamples(bucket []model.ClassifiedError, field string) []string {
	var out []string
	for _, ce := range bucket {
		if len(out) == maxExamples {
			break
		}
		v := ce.Fields[field]
		if v == "" {
			v = "unknown"
		}
		out = append(out, v)
	}
	return out
}

// uniqueFieldValues returns distinct values of a captured field in
// first-seen order.
func uniqueFieldValues(bucket []model.ClassifiedError, field string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ce := range bucket {
		v := ce.Fields[field]
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// bound truncates a list to maxExamples entries.
func bound(vals []string) []string {
	if len(vals) > maxExamples {
		return vals[:maxExamples]
	}
	return vals
}
