package aggregate

import (
	"sort"

	"github.com/shebe-dev/mcplens/internal/corpus"
	"github.com/shebe-dev/mcplens/internal/model"
)

// Providers tracked by the session comparison.
const (
	ProviderShebe  = "shebe"
	ProviderSerena = "serena"
)

// bytesPerToken is the rough average used to estimate token consumption
// from log size.
const bytesPerToken = 4

// minBuiltinCalls is the activity bar for keeping a session that used no
// tracked provider; quieter sessions are discarded as noise.
const minBuiltinCalls = 5

// BuildSession derives SessionStats for one document from its extracted
// records.
func BuildSession(doc corpus.Document, recs []model.EventRecord) model.SessionStats {
	st := model.SessionStats{
		SessionID:       doc.SessionID,
		FileSizeBytes:   doc.SizeBytes,
		EstimatedTokens: doc.SizeBytes / bytesPerToken,
	}
	for _, r := range recs {
		switch r.Kind {
		case model.KindToolCallStarted:
			switch r.Provider {
			case ProviderShebe:
				st.ShebeCalls++
				st.HasShebe = true
				st.ToolCalls = append(st.ToolCalls, ProviderShebe+"__"+r.Tool)
			case ProviderSerena:
				st.SerenaCalls++
				st.HasSerena = true
				st.ToolCalls = append(st.ToolCalls, ProviderSerena+"__"+r.Tool)
			default:
				st.OtherMCPCalls++
			}
		case model.KindBuiltinToolUsed:
			st.BuiltinCalls++
		}
	}
	return st
}

// Keep reports whether a session has enough tracked activity to take part
// in the comparison.
func Keep(st model.SessionStats) bool {
	return st.SerenaCalls > 0 || st.ShebeCalls > 0 || st.BuiltinCalls > minBuiltinCalls
}

// Distribution counts sessions per provider-usage group.
type Distribution struct {
	Total      int `json:"total_sessions_analyzed"`
	SerenaOnly int `json:"sessions_with_serena_only"`
	ShebeOnly  int `json:"sessions_with_shebe_only"`
	Both       int `json:"sessions_with_both"`
	Neither    int `json:"sessions_with_neither"`
}

// GroupStats aggregates one comparison group of sessions.
type GroupStats struct {
	Count                int     `json:"count"`
	TotalFileSizeMB      float64 `json:"total_file_size_mb"`
	AvgFileSizeKB        float64 `json:"avg_file_size_kb"`
	TotalToolCalls       int     `json:"total_tool_calls"`
	AvgToolCalls         float64 `json:"avg_tool_calls"`
	EstimatedTotalTokens int64   `json:"estimated_total_tokens"`
	EstimatedAvgTokens   float64 `json:"estimated_avg_tokens"`
}

// Comparison holds cross-group metrics. All ratios and averages are 0 when
// the corresponding group is empty, never NaN.
type Comparison struct {
	AvgLogSizeSerenaKB   float64 `json:"avg_log_size_serena_sessions_kb"`
	AvgLogSizeShebeKB    float64 `json:"avg_log_size_shebe_sessions_kb"`
	AvgLogSizeNoMCPKB    float64 `json:"avg_log_size_no_mcp_sessions_kb"`
	AvgSerenaCalls       float64 `json:"avg_serena_calls_per_session"`
	AvgShebeCalls        float64 `json:"avg_shebe_calls_per_session"`
	SerenaShebeSizeRatio float64 `json:"serena_vs_shebe_size_ratio"`
}

// ToolUsage summarizes one qualified tool name across sessions.
type ToolUsage struct {
	Tool         string `json:"tool"`
	TotalCalls   int    `json:"total_calls"`
	SessionsUsed int    `json:"sessions_used"`
}

// SessionReport is the full session comparison output.
type SessionReport struct {
	Distribution   Distribution `json:"summary"`
	SerenaSessions GroupStats   `json:"serena_sessions"`
	ShebeSessions  GroupStats   `json:"shebe_sessions"`
	NoMCPSessions  GroupStats   `json:"no_mcp_sessions"`
	Comparison     Comparison   `json:"comparison"`
	ToolBreakdown  []ToolUsage  `json:"tool_call_breakdown"`
}

// Compare builds the session comparison report from retained sessions.
// Group membership: the serena and shebe groups include sessions that used
// both providers; the comparison averages use the exclusive groups only.
func Compare(sessions []model.SessionStats) SessionReport {
	var serenaOnly, shebeOnly, both, neither []model.SessionStats
	for _, s := range sessions {
		switch {
		case s.HasSerena && s.HasShebe:
			both = append(both, s)
		case s.HasSerena:
			serenaOnly = append(serenaOnly, s)
		case s.HasShebe:
			shebeOnly = append(shebeOnly, s)
		default:
			neither = append(neither, s)
		}
	}

	rep := SessionReport{
		Distribution: Distribution{
			Total:      len(sessions),
			SerenaOnly: len(serenaOnly),
			ShebeOnly:  len(shebeOnly),
			Both:       len(both),
			Neither:    len(neither),
		},
		SerenaSessions: groupStats(append(append([]model.SessionStats(nil), serenaOnly...), both...)),
		ShebeSessions:  groupStats(append(append([]model.SessionStats(nil), shebeOnly...), both...)),
		NoMCPSessions:  groupStats(neither),
		ToolBreakdown:  toolBreakdown(sessions),
	}

	serenaAvgSize := avgSize(serenaOnly)
	shebeAvgSize := avgSize(shebeOnly)
	rep.Comparison = Comparison{
		AvgLogSizeSerenaKB:   serenaAvgSize / 1024,
		AvgLogSizeShebeKB:    shebeAvgSize / 1024,
		AvgLogSizeNoMCPKB:    avgSize(neither) / 1024,
		AvgSerenaCalls:       avgOf(serenaOnly, func(s model.SessionStats) int { return s.SerenaCalls }),
		AvgShebeCalls:        avgOf(shebeOnly, func(s model.SessionStats) int { return s.ShebeCalls }),
		SerenaShebeSizeRatio: ratio(serenaAvgSize, shebeAvgSize),
	}
	return rep
}

// ratio divides num by denom, returning 0 for an empty denominator group.
func ratio(num, denom float64) float64 {
	if denom <= 0 {
		return 0
	}
	return num / denom
}

func avgSize(sessions []model.SessionStats) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total int64
	for _, s := range sessions {
		total += s.FileSizeBytes
	}
	return float64(total) / float64(len(sessions))
}

func avgOf(sessions []model.SessionStats, f func(model.SessionStats) int) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += f(s)
	}
	return float64(total) / float64(len(sessions))
}

func groupStats(sessions []model.SessionStats) GroupStats {
	gs := GroupStats{Count: len(sessions)}
	if len(sessions) == 0 {
		return gs
	}

	var totalSize, totalTokens int64
	totalCalls := 0
	for _, s := range sessions {
		totalSize += s.FileSizeBytes
		totalTokens += s.EstimatedTokens
		totalCalls += len(s.ToolCalls)
	}

	n := float64(len(sessions))
	gs.TotalFileSizeMB = float64(totalSize) / (1024 * 1024)
	gs.AvgFileSizeKB = float64(totalSize) / n / 1024
	gs.TotalToolCalls = totalCalls
	gs.AvgToolCalls = float64(totalCalls) / n
	gs.EstimatedTotalTokens = totalTokens
	gs.EstimatedAvgTokens = float64(totalTokens) / n
	return gs
}

// toolBreakdown counts calls and distinct sessions per qualified tool
// name, ranked by call count descending (name ascending on ties).
func toolBreakdown(sessions []model.SessionStats) []ToolUsage {
	counts := make(map[string]int)
	seenIn := make(map[string]map[string]bool)
	for _, s := range sessions {
		for _, tool := range s.ToolCalls {
			counts[tool]++
			if seenIn[tool] == nil {
				seenIn[tool] = make(map[string]bool)
			}
			seenIn[tool][s.SessionID] = true
		}
	}

	usage := make([]ToolUsage, 0, len(counts))
	for tool, count := range counts {
		usage = append(usage, ToolUsage{
			Tool:         tool,
			TotalCalls:   count,
			SessionsUsed: len(seenIn[tool]),
		})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].TotalCalls != usage[j].TotalCalls {
			return usage[i].TotalCalls > usage[j].TotalCalls
		}
		return usage[i].Tool < usage[j].Tool
	})
	return usage
}
