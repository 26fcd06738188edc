// Package aggregate accumulates classified records into run-level
// statistics: per-tool and per-category error counts, per-session provider
// usage, and cross-group comparison metrics.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/shebe-dev/mcplens/internal/model"
)

// ToolNotFoundKey is the synthetic ByTool key for missing-tool records, so
// server-availability failures rank alongside per-tool failures.
const ToolNotFoundKey = "tool_not_found"

// NotFoundError records a tool call that failed because no running server
// exposed the tool.
type NotFoundError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

// ErrorStats accumulates failure records across the whole corpus. Counters
// are the only mutable state during a run; everything else is append-only.
type ErrorStats struct {
	TotalErrors int
	ByTool      map[string]int
	// ByCategory groups classified errors under the composite
	// "<category>_<subcategory>" key. Grouping is order-independent;
	// All preserves file order for deterministic report samples.
	ByCategory map[string][]model.ClassifiedError
	All        []model.ClassifiedError
	NotFound   []NotFoundError
}

// NewErrorStats returns an empty accumulator.
func NewErrorStats() *ErrorStats {
	return &ErrorStats{
		ByTool:     make(map[string]int),
		ByCategory: make(map[string][]model.ClassifiedError),
	}
}

// AddFailure records one classified tool failure. TotalErrors increments
// exactly once per failure record, never per classification attempt.
func (s *ErrorStats) AddFailure(ce model.ClassifiedError) {
	s.TotalErrors++
	s.ByTool[ce.Tool]++
	key := ce.CompositeKey()
	s.ByCategory[key] = append(s.ByCategory[key], ce)
	s.All = append(s.All, ce)
}

// AddToolNotFound records one missing-tool event. These count toward
// TotalErrors and the synthetic ByTool key but stay out of the category
// buckets so they are never double counted.
func (s *ErrorStats) AddToolNotFound(tool string) {
	s.TotalErrors++
	s.ByTool[ToolNotFoundKey]++
	s.NotFound = append(s.NotFound, NotFoundError{
		Tool:    tool,
		Message: fmt.Sprintf("Server not running when %s was called", tool),
	})
}

// CategoryCounts returns the size of each composite-category bucket.
func (s *ErrorStats) CategoryCounts() map[string]int {
	counts := make(map[string]int, len(s.ByCategory))
	for k, v := range s.ByCategory {
		counts[k] = len(v)
	}
	return counts
}

// InCategory returns, in file order, the classified errors whose top-level
// category is cat.
func (s *ErrorStats) InCategory(cat string) []model.ClassifiedError {
	var out []model.ClassifiedError
	for _, ce := range s.All {
		if ce.Category == cat {
			out = append(out, ce)
		}
	}
	return out
}

// Merge folds other into s. Counts are commutative, so merge order never
// affects totals; bucket contents keep each accumulator's internal order.
func (s *ErrorStats) Merge(other *ErrorStats) {
	s.TotalErrors += other.TotalErrors
	for k, v := range other.ByTool {
		s.ByTool[k] += v
	}
	for k, v := range other.ByCategory {
		s.ByCategory[k] = append(s.ByCategory[k], v...)
	}
	s.All = append(s.All, other.All...)
	s.NotFound = append(s.NotFound, other.NotFound...)
}

// Ranked is a name/count pair used for ranked report tables.
type Ranked struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RankCounts converts a counter map into a slice sorted by count
// descending, ties broken by name for stable output.
func RankCounts(m map[string]int) []Ranked {
	ranked := make([]Ranked, 0, len(m))
	for k, v := range m {
		ranked = append(ranked, Ranked{Name: k, Count: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
