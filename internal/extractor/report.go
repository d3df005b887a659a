package extractor

import "github.com/stemsi/quizdoc/internal/model"

const (
	expectedOptions = 4
	sampleSize      = 5
)

// IncompleteQuestion identifies a question without exactly four options.
type IncompleteQuestion struct {
	ID      int `json:"id"`
	Options int `json:"options"`
}

// Report is advisory output about an extraction. Nothing in it is an error.
type Report struct {
	Total           int                  `json:"total"`
	IncompleteCount int                  `json:"incompleteCount"`
	Incomplete      []IncompleteQuestion `json:"incomplete"`
	Dropped         int                  `json:"dropped"`
	SkippedLines    int                  `json:"skippedLines"`
	IgnoredLines    int                  `json:"ignoredLines"`
}

// Diagnose flags every question whose option count is not four. Incomplete
// holds at most the first five of them.
func Diagnose(questions []model.Question) Report {
	r := Report{
		Total:      len(questions),
		Incomplete: []IncompleteQuestion{},
	}
	for _, q := range questions {
		if len(q.Options) == expectedOptions {
			continue
		}
		r.IncompleteCount++
		if len(r.Incomplete) < sampleSize {
			r.Incomplete = append(r.Incomplete, IncompleteQuestion{ID: q.ID, Options: len(q.Options)})
		}
	}
	return r
}
