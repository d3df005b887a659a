// Package extractor rebuilds multiple-choice questions from the loosely
// formatted paragraphs of an exam document.
//
// A document lists questions as "Câu N. text" followed by options labelled
// A. to D., possibly several on one line and possibly wrapping over several
// paragraphs. The correct option carries a leading "*".
package extractor

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/model"
	"golang.org/x/text/unicode/norm"
)

// DefaultSkipPrefixes are the banner lines of the source documents.
var DefaultSkipPrefixes = []string{"HỆ THỐNG CÂU HỎI", "Trang "}

// Extractor turns paragraph text into questions. It holds no scan state and
// may be reused across documents.
type Extractor struct {
	skipPrefixes []string
	log          zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSkipPrefixes replaces the banner prefixes of lines to ignore.
func WithSkipPrefixes(prefixes []string) Option {
	return func(e *Extractor) {
		e.skipPrefixes = append([]string(nil), prefixes...)
	}
}

// WithLogger attaches a logger for per-question debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Extractor) {
		e.log = log.With().Str("component", "extractor").Logger()
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		skipPrefixes: append([]string(nil), DefaultSkipPrefixes...),
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one extraction.
type Result struct {
	Questions []model.Question
	Report    Report
}

// Extract scans paragraphs once, in order, and returns the finalized
// questions with their diagnostics.
func (e *Extractor) Extract(paragraphs []string) *Result {
	var (
		acc       accumulator
		questions = []model.Question{}
		stats     scanStats
	)

	flush := func() {
		if !acc.pending() {
			return
		}
		q, ok := acc.finalize(len(questions) + 1)
		if !ok {
			stats.dropped++
			e.log.Debug().Str("question", acc.question).Int("raw_options", len(acc.options)).
				Msg("Dropping question with fewer than 2 options")
			return
		}
		questions = append(questions, q)
	}

	for _, para := range paragraphs {
		// Word may store Vietnamese diacritics decomposed.
		text := norm.NFC.String(strings.TrimSpace(para))
		if text == "" {
			continue
		}
		if e.isBoilerplate(text) {
			stats.skipped++
			continue
		}

		if m := questionStart.FindStringSubmatch(text); m != nil {
			flush()
			question, opts := splitQuestionLine(strings.TrimSpace(m[2]))
			acc.start(question, opts)
			continue
		}

		if optionLine.MatchString(text) {
			acc.addOptions(SplitInline(text))
			continue
		}

		if !strings.HasPrefix(text, questionKeyword) && acc.extendLast(text) {
			continue
		}

		stats.ignored++
	}
	flush()
	acc.reset()

	report := Diagnose(questions)
	report.Dropped = stats.dropped
	report.SkippedLines = stats.skipped
	report.IgnoredLines = stats.ignored

	e.log.Debug().Int("questions", len(questions)).Int("dropped", stats.dropped).
		Int("ignored_lines", stats.ignored).Msg("Extraction finished")

	return &Result{Questions: questions, Report: report}
}

func (e *Extractor) isBoilerplate(text string) bool {
	for _, prefix := range e.skipPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return pageFooter.MatchString(text)
}

type scanStats struct {
	dropped int
	skipped int
	ignored int
}
