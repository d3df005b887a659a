// Package docx reads the body paragraphs of a Word .docx document.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// Sentinel errors for document reading.
var (
	ErrNotDocx         = errors.New("not a docx document")
	ErrMissingDocument = errors.New(documentPart + " not found in archive")
)

// ReadFile returns the body paragraphs of the .docx at path, in document
// order. Empty paragraphs are kept as empty strings.
func ReadFile(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrNotDocx, path)
		}
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	return paragraphsFromArchive(&r.Reader)
}

// Read is ReadFile for an in-memory or already opened document.
func Read(ra io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, ErrNotDocx
		}
		return nil, fmt.Errorf("open docx: %w", err)
	}
	return paragraphsFromArchive(zr)
}

// ReadBytes is Read over a byte slice.
func ReadBytes(content []byte) ([]string, error) {
	return Read(bytes.NewReader(content), int64(len(content)))
}

func paragraphsFromArchive(zr *zip.Reader) ([]string, error) {
	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, ErrMissingDocument
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	return parseParagraphs(rc)
}

// parseParagraphs walks document.xml and collects the text of every
// paragraph that is a direct child of w:body. Paragraphs nested in tables,
// text boxes or other containers are not body paragraphs and are skipped.
// Text comes only from runs of the paragraph itself or of its hyperlinks;
// properties (tab stops), tracked insertions and math are not text.
func parseParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		stack      []string
		current    strings.Builder
		inPara     bool
		paraDepth  int
		nested     int
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "p" {
				switch {
				case inPara:
					nested++
				case len(stack) > 0 && stack[len(stack)-1] == "body":
					inPara = true
					paraDepth = len(stack)
					current.Reset()
				}
			}
			if inPara && nested == 0 && len(stack)-1 == runDepth(stack, paraDepth) {
				switch name {
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					if breakIsLine(t) {
						current.WriteByte('\n')
					}
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Local != "p" || !inPara {
				continue
			}
			if nested > 0 {
				nested--
				continue
			}
			if len(stack) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}

		case xml.CharData:
			if inPara && nested == 0 && stack[len(stack)-1] == "t" && len(stack)-2 == runDepth(stack, paraDepth) {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

// runDepth returns the stack index of the run enclosing the current element
// when that run belongs directly to the paragraph at paraDepth, either as a
// child or inside a hyperlink. It returns -1 otherwise.
func runDepth(stack []string, paraDepth int) int {
	i := paraDepth + 1
	if len(stack) > i && stack[i] == "hyperlink" {
		i++
	}
	if len(stack) > i && stack[i] == "r" {
		return i
	}
	return -1
}

// breakIsLine reports whether a w:br renders as a line break. Page and
// column breaks carry no text.
func breakIsLine(el xml.StartElement) bool {
	for _, attr := range el.Attr {
		if attr.Name.Local == "type" {
			return attr.Value == "" || attr.Value == "textWrapping"
		}
	}
	return true
}
