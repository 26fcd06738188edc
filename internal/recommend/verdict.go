package recommend

import (
	"fmt"

	"github.com/shebe-dev/mcplens/internal/aggregate"
)

// Ratio thresholds for the comparison verdict.
const (
	ratioStrong = 1.5
	ratioModest = 1.0
)

// Verdict interprets the session comparison into a go/no-go finding for
// building a lightweight find_references tool.
type Verdict struct {
	Finding        string `json:"finding"`
	Recommendation string `json:"recommendation"`
}

// CompareVerdict maps the serena/shebe log-size ratio to a fixed finding.
func CompareVerdict(c aggregate.Comparison) Verdict {
	r := c.SerenaShebeSizeRatio
	switch {
	case r > ratioStrong:
		return Verdict{
			Finding: fmt.Sprintf("Serena sessions have %.1fx larger logs than shebe sessions. "+
				"This suggests serena-mcp tools may return more verbose output, consuming more context. "+
				"A lightweight find_references tool in shebe could be more token-efficient.", r),
			Recommendation: "Proceed with shebe find_references implementation.",
		}
	case r > ratioModest:
		return Verdict{
			Finding: fmt.Sprintf("Serena sessions are %.1fx larger than shebe sessions. "+
				"Modest difference - both tools have similar context footprint. "+
				"Shebe find_references may still be valuable for its simpler API (no LSP setup), "+
				"purpose-built rename workflows, and confidence scoring.", r),
			Recommendation: "Consider implementing, but lower priority.",
		}
	default:
		return Verdict{
			Finding: "Shebe sessions are actually larger than serena sessions. " +
				"This could indicate shebe tools are verbose in different ways, different usage " +
				"patterns (more search queries), or a sample size too small for conclusions.",
			Recommendation: "Gather more data before deciding.",
		}
	}
}
