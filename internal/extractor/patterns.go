package extractor

import "regexp"

// ws matches one whitespace rune, including Unicode separators such as the
// non-breaking spaces word processors insert around labels.
const ws = `[\s\p{Z}]`

var (
	// questionStart matches "Câu 12. text" and "///Câu 12: text".
	questionStart = regexp.MustCompile(`^(?:///)?Câu` + ws + `*(\d+)[.:]?` + ws + `*(.+)$`)

	// inlineOption finds the first option label inside a question line.
	inlineOption = regexp.MustCompile(ws + `+\*?[A-D]` + ws + `*\.` + ws + `+`)

	// optionLine matches a paragraph that begins with an option label.
	optionLine = regexp.MustCompile(`^` + ws + `*\*?[A-D]` + ws + `*\.` + ws + `*`)

	// label finds every option label occurrence within a span of text.
	label = regexp.MustCompile(ws + `*\*?([A-D])` + ws + `*\.` + ws + `*`)

	// leadingLabel extracts the label letter of a raw option.
	leadingLabel = regexp.MustCompile(`^\*?([A-D])`)

	// displayPrefix is the marker and label stripped from option text.
	displayPrefix = regexp.MustCompile(`^\*?` + ws + `*[A-D]` + ws + `*\.` + ws + `*`)

	pageFooter         = regexp.MustCompile(`^Trang` + ws + `+\d+/\d+`)
	trailingPageFooter = regexp.MustCompile(ws + `*Trang` + ws + `+\d+/\d+` + ws + `*$`)
)

// correctMarker prefixes the raw text of the correct option.
const correctMarker = "*"

// questionKeyword opens every question line.
const questionKeyword = "Câu"
