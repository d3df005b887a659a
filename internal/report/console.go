// Package report prints the human-readable progress of a quiz extraction.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/stemsi/quizdoc/internal/extractor"
	"github.com/stemsi/quizdoc/internal/model"
)

const (
	previewQuestions = 3
	questionWidth    = 50
	optionWidth      = 60
)

// Console writes operator-facing messages. It is advisory output only.
type Console struct {
	out     io.Writer
	noColor bool
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, noColor bool) *Console {
	return &Console{out: out, noColor: noColor}
}

// Start announces that parsing has begun.
func (c *Console) Start(path string) {
	c.println(stylize("Đang parse file docx...", c.noColor, lipgloss.Color("33")))
	c.println(stylize("  "+path, c.noColor, lipgloss.Color("244")))
}

// Parsed reports the number of questions extracted.
func (c *Console) Parsed(n int) {
	c.println(fmt.Sprintf("Đã parse được %d câu hỏi", n))
}

// Diagnostics prints the incomplete-question warning, if any.
func (c *Console) Diagnostics(r extractor.Report) {
	if r.IncompleteCount == 0 {
		return
	}
	c.println("")
	c.println(stylize(fmt.Sprintf("Cảnh báo: Có %d câu hỏi không có đủ 4 đáp án:", r.IncompleteCount),
		c.noColor, lipgloss.Color("220")))
	for _, q := range r.Incomplete {
		c.println(fmt.Sprintf("  Câu %d: %d đáp án", q.ID, q.Options))
	}
}

// Saved reports where the JSON file was written.
func (c *Console) Saved(path string) {
	c.println("")
	c.println(stylize("Đã lưu file JSON: "+path, c.noColor, lipgloss.Color("42")))
}

// Preview prints the first few questions, ticking the correct option.
func (c *Console) Preview(questions []model.Question) {
	c.println("")
	c.println("--- Một số câu hỏi mẫu ---")

	n := min(previewQuestions, len(questions))
	for _, q := range questions[:n] {
		c.println("")
		c.println(fmt.Sprintf("Câu %d: %s...", q.ID, truncate(q.Question, questionWidth)))
		for i, opt := range q.Options {
			line := fmt.Sprintf("  [ ] %s...", truncate(opt, optionWidth))
			if i == q.CorrectAnswer {
				line = stylize(fmt.Sprintf("  [✓] %s...", truncate(opt, optionWidth)), c.noColor, lipgloss.Color("42"))
			}
			c.println(line)
		}
	}
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
