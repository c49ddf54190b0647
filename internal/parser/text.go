package parser

import (
	"io"
	"strings"
)

// TextParser handles plain text files. Paragraphs are separated by blank
// (empty or whitespace-only) lines; CRLF and CR line endings are normalized.
// The whole input is read, so line length is unbounded.
type TextParser struct{}

func (p *TextParser) Paragraphs(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string
	var current []string
	flush := func() {
		if t := strings.TrimSpace(strings.Join(current, "\n")); t != "" {
			paragraphs = append(paragraphs, t)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs, nil
}
