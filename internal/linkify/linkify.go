// Package linkify rewrites "Label (https://url)" references in prose into
// anchors over an inferred label, so the raw URL never shows as page text.
package linkify

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/homepage/internal/markup"
)

// parenURL matches a parenthesized absolute http(s) URL. The URL stops at the
// first ')' or whitespace.
var parenURL = regexp.MustCompile(`\((https?://[^)\s]+)\)`)

// Connectors mark where a label begins, in priority order. The connector whose
// last occurrence is closest to the reference wins; ties go to the earlier entry.
var Connectors = []string{
	" at the ",
	" from the ",
	" in the ",
	" at ",
	" from ",
	" in ",
	" and ",
	" or ",
	" (",
	"; ",
	": ",
	", ",
	"\n",
	". ",
}

// Reference is one parenthesized URL found in a paragraph.
type Reference struct {
	LabelStart int // byte offset of the replaced span
	Open       int // offset of '('
	End        int // offset just past ')'
	URL        string
	Label      string // empty when no label could be inferred
}

// LabelStart returns the offset at which the label for a reference opening at
// lparen begins. Connectors are searched in all of text[:lparen]; the result
// never precedes cursor, the end of the previously consumed reference.
func LabelStart(text string, lparen, cursor int) int {
	left := text[:lparen]
	splitAt, conn := -1, ""
	for _, c := range Connectors {
		if idx := strings.LastIndex(left, c); idx > splitAt {
			splitAt, conn = idx, c
		}
	}
	if splitAt < 0 {
		return cursor
	}
	return max(splitAt+len(conn), cursor)
}

// Scan finds every reference in text, left to right and non-overlapping.
func Scan(text string) []Reference {
	var refs []Reference
	cursor := 0
	for _, m := range parenURL.FindAllStringSubmatchIndex(text, -1) {
		open, end := m[0], m[1]
		start := LabelStart(text, open, cursor)
		refs = append(refs, Reference{
			LabelStart: start,
			Open:       open,
			End:        end,
			URL:        text[m[2]:m[3]],
			Label:      strings.TrimSpace(text[start:open]),
		})
		cursor = end
	}
	return refs
}

// Nodes converts a paragraph into sibling text and anchor nodes. References
// with an empty label are kept verbatim as text.
func Nodes(text string) []*html.Node {
	var nodes []*html.Node
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			nodes = append(nodes, markup.Text(pending.String()))
			pending.Reset()
		}
	}

	cursor := 0
	for _, ref := range Scan(text) {
		if ref.Label == "" {
			pending.WriteString(text[cursor:ref.End])
			cursor = ref.End
			continue
		}
		pending.WriteString(text[cursor:ref.LabelStart])
		flush()
		nodes = append(nodes, markup.Elem(atom.A, markup.Attrs("href", ref.URL), markup.Text(ref.Label)))
		cursor = ref.End
	}
	pending.WriteString(text[cursor:])
	flush()
	return nodes
}

// HTML renders a paragraph as an escaped HTML fragment.
func HTML(text string) (string, error) {
	return markup.RenderString(Nodes(text)...)
}
