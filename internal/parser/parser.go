package parser

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// ParagraphParser splits a document into an ordered list of paragraphs.
type ParagraphParser interface {
	Paragraphs(r io.Reader) ([]string, error)
}

// ForFile returns the appropriate paragraph parser for a filename.
func ForFile(filename string) (ParagraphParser, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}
