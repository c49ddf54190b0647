package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/homepage/internal/markup"
	"github.com/dgallion1/homepage/internal/records"
)

// SplitAuthors splits an author list on commas or semicolons, dropping blanks.
func SplitAuthors(authors string) []string {
	var names []string
	for _, name := range strings.Split(strings.ReplaceAll(authors, ";", ","), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AuthorNodes renders names in order, linking those present in links and
// separating them with ", ".
func AuthorNodes(names []string, links records.LinkTable) []*html.Node {
	nodes := make([]*html.Node, 0, 2*len(names))
	for i, name := range names {
		if i > 0 {
			nodes = append(nodes, markup.Text(", "))
		}
		if url, ok := links.Lookup(name); ok {
			nodes = append(nodes, markup.Elem(atom.A, markup.Attrs("href", url), markup.Text(name)))
		} else {
			nodes = append(nodes, markup.Text(name))
		}
	}
	return nodes
}

// Meta builds the author/year line: "<authors> · <year>", either part alone,
// or an empty paragraph.
func Meta(authors, year string, links records.LinkTable) *html.Node {
	p := markup.Elem(atom.P, markup.Attrs("class", "pub-meta"))
	names := SplitAuthors(authors)
	markup.Append(p, AuthorNodes(names, links)...)
	switch {
	case len(names) > 0 && year != "":
		markup.Append(p, markup.Text(" · "+year))
	case year != "":
		markup.Append(p, markup.Text(year))
	}
	return p
}
