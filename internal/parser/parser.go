// Package parser turns lightweight line-based markup into content blocks.
package parser

import (
	"strings"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
)

// headingPrefixes is ordered longest first so "### " is never read as a level-1 heading.
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

// Parse splits content into lines and classifies each non-blank line as a heading or paragraph.
// Every line yields at most one block; there is no multi-line paragraph or nested markup.
// Heading detection runs on the raw line, so indented markers stay paragraphs.
func Parse(content string) []model.ContentBlock {
	lines := strings.Split(content, "\n")
	blocks := make([]model.ContentBlock, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, classify(line))
	}
	return blocks
}

func classify(line string) model.ContentBlock {
	for _, h := range headingPrefixes {
		if rest, ok := strings.CutPrefix(line, h.prefix); ok {
			return model.Heading(h.level, rest)
		}
	}
	return model.Paragraph(line)
}
