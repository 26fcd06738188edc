// Package pipeline wires corpus loading, record extraction,
// classification, aggregation, and recommendation generation into a single
// analysis run.
package pipeline

import (
	"errors"
	"io"

	"github.com/shebe-dev/mcplens/internal/aggregate"
	"github.com/shebe-dev/mcplens/internal/classify"
	"github.com/shebe-dev/mcplens/internal/corpus"
	"github.com/shebe-dev/mcplens/internal/extract"
	"github.com/shebe-dev/mcplens/internal/model"
	"github.com/shebe-dev/mcplens/internal/recommend"
)

// Result bundles the outputs of one analysis run.
type Result struct {
	LogDir          string
	Files           int
	MissingDir      bool
	Errors          *aggregate.ErrorStats
	Recommendations []model.Recommendation
	Sessions        aggregate.SessionReport
	Verdict         recommend.Verdict
}

// Run analyzes every document in dir. Documents are processed strictly
// sequentially; each is read fully, scanned line by line, and discarded —
// only derived records persist. A missing directory yields an empty result
// with MissingDir set rather than an error; unreadable documents are
// reported to warn and skipped.
func Run(dir string, warn io.Writer) (*Result, error) {
	res := &Result{
		LogDir: dir,
		Errors: aggregate.NewErrorStats(),
	}

	docs, err := corpus.Load(dir, warn)
	if errors.Is(err, corpus.ErrMissingDir) {
		res.MissingDir = true
	} else if err != nil {
		return nil, err
	}
	res.Files = len(docs)

	var sessions []model.SessionStats
	for _, doc := range docs {
		recs := extract.Records(doc.Text)
		for _, r := range recs {
			switch r.Kind {
			case model.KindToolFailure:
				res.Errors.AddFailure(classify.Classify(r.Tool, r.Message))
			case model.KindToolNotFound:
				res.Errors.AddToolNotFound(r.Tool)
			}
		}
		if st := aggregate.BuildSession(doc, recs); aggregate.Keep(st) {
			sessions = append(sessions, st)
		}
	}

	res.Recommendations = recommend.Build(res.Errors)
	res.Sessions = aggregate.Compare(sessions)
	res.Verdict = recommend.CompareVerdict(res.Sessions.Comparison)
	return res, nil
}
