package extractor

import "strings"

// SplitInline breaks a span holding several concatenated options, such as
// "A. Paris B. London C. Berlin", into one fragment per label. A span with
// fewer than two labels comes back whole (trimmed), or as nothing if blank.
func SplitInline(text string) []string {
	matches := label.FindAllStringIndex(text, -1)

	if len(matches) <= 1 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	fragments := make([]string, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if fragment := strings.TrimSpace(text[m[0]:end]); fragment != "" {
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

// splitQuestionLine separates the question text from options written on the
// same line. opts is nil when the line carries no inline option.
func splitQuestionLine(rest string) (question string, opts []string) {
	loc := inlineOption.FindStringIndex(rest)
	if loc == nil {
		return rest, nil
	}
	question = strings.TrimSpace(rest[:loc[0]])
	return question, SplitInline(strings.TrimSpace(rest[loc[0]:]))
}

// optionLabel returns the A–D label of a raw option, or "" if it has none.
func optionLabel(raw string) string {
	m := leadingLabel.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// cleanOption strips the correctness marker, the label and any trailing page
// footer from a raw option.
func cleanOption(raw string) string {
	text := displayPrefix.ReplaceAllString(strings.TrimSpace(raw), "")
	text = trailingPageFooter.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func isCorrect(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), correctMarker)
}
