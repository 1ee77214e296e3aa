// Package ocr is the text source adapter: it turns source files into the
// page/line sequences the extraction engine consumes. All I/O happens
// here; the engine itself never touches the filesystem or the network.
package ocr

import (
	"context"
	"strings"
)

// PageText is one recognized page: raw lines in reading order.
type PageText struct {
	Number int
	Lines  []string
}

// Provider recognizes text from a source file. Implementations are
// capability-tagged by Name(), which becomes the candidate origin tag.
type Provider interface {
	Name() string
	Recognize(ctx context.Context, path string) ([]PageText, error)
}

// splitPages turns tool output into pages on form-feed boundaries and
// lines on newlines. Trailing blank lines per page are dropped; interior
// blanks are kept because line numbers carry positional meaning.
func splitPages(text string) []PageText {
	var pages []PageText
	for i, chunk := range strings.Split(text, "\f") {
		lines := strings.Split(strings.ReplaceAll(chunk, "\r\n", "\n"), "\n")
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		if len(lines) == 0 {
			continue
		}
		pages = append(pages, PageText{Number: i + 1, Lines: lines})
	}
	return pages
}

// hasText reports whether any page carries non-blank content.
func hasText(pages []PageText) bool {
	for _, p := range pages {
		for _, l := range p.Lines {
			if strings.TrimSpace(l) != "" {
				return true
			}
		}
	}
	return false
}
