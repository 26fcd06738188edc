// Package extract turns raw debug-log text into typed event records by
// applying the pattern registry line by line.
package extract

import (
	"strings"

	"github.com/shebe-dev/mcplens/internal/model"
)

// Records scans one document's text and returns the events extracted in
// file order. A line matching no pattern yields nothing. Pure function of
// the input text; matching never spans lines.
func Records(text string) []model.EventRecord {
	var recs []model.EventRecord
	for _, line := range strings.Split(text, "\n") {
		recs = append(recs, lineRecords(line)...)
	}
	return recs
}

// lineRecords applies the registry to a single line. The failure shapes
// are gated on Relevant so only lines mentioning the tool family under
// study are examined; invocation-tracking shapes are not gated because the
// session analysis compares all providers.
func lineRecords(line string) []model.EventRecord {
	var recs []model.EventRecord

	if Relevant(line) {
		if m := reToolFailed.FindStringSubmatch(line); m != nil {
			recs = append(recs, model.EventRecord{
				Kind:    model.KindToolFailure,
				Tool:    m[1],
				Message: m[2],
			})
		}
		if m := reToolNotFound.FindStringSubmatch(line); m != nil {
			recs = append(recs, model.EventRecord{
				Kind: model.KindToolNotFound,
				Tool: m[1],
			})
		}
	}

	if m := reCallStarted.FindStringSubmatch(line); m != nil {
		recs = append(recs, model.EventRecord{
			Kind:     model.KindToolCallStarted,
			Provider: m[1],
			Tool:     m[2],
		})
	}
	if m := reCallCompleted.FindStringSubmatch(line); m != nil {
		recs = append(recs, model.EventRecord{
			Kind:     model.KindToolCallCompleted,
			Provider: m[1],
			Tool:     m[2],
		})
	}
	if m := reCallFailed.FindStringSubmatch(line); m != nil {
		recs = append(recs, model.EventRecord{
			Kind:     model.KindToolCallFailed,
			Provider: m[1],
			Tool:     m[2],
		})
	}
	if m := reBuiltinTool.FindStringSubmatch(line); m != nil {
		recs = append(recs, model.EventRecord{
			Kind: model.KindBuiltinToolUsed,
			Tool: m[1],
		})
	}

	return recs
}
