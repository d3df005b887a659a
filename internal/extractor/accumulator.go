package extractor

import (
	"sort"
	"strings"

	"github.com/stemsi/quizdoc/internal/model"
)

// accumulator holds the question being assembled during a scan. Options may
// collect before any question has started; they are discarded when the next
// question begins.
type accumulator struct {
	question string
	options  []string
}

// start replaces the in-progress state with a new question.
func (a *accumulator) start(question string, options []string) {
	a.question = question
	a.options = append([]string(nil), options...)
}

func (a *accumulator) addOptions(fragments []string) {
	a.options = append(a.options, fragments...)
}

// extendLast joins a continuation line onto the last raw option.
func (a *accumulator) extendLast(text string) bool {
	if len(a.options) == 0 {
		return false
	}
	last := len(a.options) - 1
	a.options[last] = a.options[last] + " " + text
	return true
}

// pending reports whether there is a question worth finalizing.
func (a *accumulator) pending() bool {
	return a.question != "" && len(a.options) > 0
}

func (a *accumulator) reset() {
	a.question = ""
	a.options = nil
}

// finalize turns the accumulated state into a Question with the given id.
// ok is false when fewer than two usable options remain.
func (a *accumulator) finalize(id int) (q model.Question, ok bool) {
	raw := normalizeOptions(a.options)
	if len(raw) < 2 {
		return model.Question{}, false
	}

	correct := 0
	for i, opt := range raw {
		if isCorrect(opt) {
			correct = i
			break
		}
	}

	options := make([]string, len(raw))
	for i, opt := range raw {
		options[i] = cleanOption(opt)
	}

	return model.Question{
		ID:            id,
		Question:      a.question,
		Options:       options,
		CorrectAnswer: correct,
	}, true
}

// normalizeOptions re-splits fragments that still hold several labels, keeps
// the first fragment per label and orders them A..D.
func normalizeOptions(options []string) []string {
	var processed []string
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			continue
		}
		if inline := SplitInline(opt); len(inline) > 1 {
			processed = append(processed, inline...)
		} else {
			processed = append(processed, strings.TrimSpace(opt))
		}
	}

	unique := make([]string, 0, len(processed))
	seen := make(map[string]bool, 4)
	for _, opt := range processed {
		letter := optionLabel(opt)
		if letter == "" || seen[letter] {
			continue
		}
		seen[letter] = true
		unique = append(unique, opt)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return optionLabel(unique[i]) < optionLabel(unique[j])
	})
	return unique
}
