package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/homepage/internal/linkify"
	"github.com/dgallion1/homepage/internal/markup"
	"github.com/dgallion1/homepage/internal/records"
)

// DefaultSocialOrder is the order of the sidebar links. Labels outside it are
// never rendered.
var DefaultSocialOrder = []string{"Email", "LinkedIn", "CV", "Google Scholar"}

const (
	fontsPreconnect       = "https://fonts.googleapis.com"
	fontsStaticPreconnect = "https://fonts.gstatic.com"
	fontsStylesheet       = "https://fonts.googleapis.com/css2?family=Roboto+Slab:wght@100..900&family=Roboto:ital,wght@0,100..900;1,100..900&display=swap"

	// copyYearID is filled with the current year by yearScript when the page is viewed.
	copyYearID = "copy-year"
	yearScript = "(function () {\n" +
		"  const yearEl = document.getElementById(\"copy-year\");\n" +
		"  if (yearEl) { yearEl.textContent = new Date().getFullYear(); }\n" +
		"})();"
)

// Site is the fixed profile part of the page.
type Site struct {
	Name        string
	Title       string // <title>; defaults to Name
	Photo       string // site-relative path of the portrait
	Stylesheet  string // site-relative path of the local stylesheet
	SocialOrder []string
}

// Page is everything the assembler lays out.
type Page struct {
	Site    Site
	Social  records.LinkTable
	Bio     []string     // paragraphs, linkified on render
	Entries []*html.Node // rendered publications in table order
}

// Document assembles the complete page, doctype included.
func Document(p Page) *html.Node {
	root := markup.Elem(atom.Html, markup.Attrs("lang", "en"),
		head(p.Site),
		markup.Elem(atom.Body, nil,
			markup.Elem(atom.Div, markup.Attrs("class", "layout"),
				sidebar(p.Site, p.Social),
				markup.Elem(atom.Main, markup.Attrs("class", "content"),
					BioSection(p.Bio),
					ResearchSection(p.Entries),
				),
			),
			footer(p.Site.Name),
			markup.Elem(atom.Script, nil, markup.Text(yearScript)),
		),
	)
	return markup.Document(root)
}

func head(site Site) *html.Node {
	title := site.Title
	if title == "" {
		title = site.Name
	}
	return markup.Elem(atom.Head, nil,
		markup.Elem(atom.Meta, markup.Attrs("charset", "utf-8")),
		markup.Elem(atom.Meta, markup.Attrs("content", "width=device-width, initial-scale=1", "name", "viewport")),
		markup.Elem(atom.Title, nil, markup.Text(title)),
		markup.Elem(atom.Link, markup.Attrs("rel", "preconnect", "href", fontsPreconnect)),
		markup.Elem(atom.Link, markup.Attrs("rel", "preconnect", "href", fontsStaticPreconnect, "crossorigin", "")),
		markup.Elem(atom.Link, markup.Attrs("rel", "stylesheet", "href", fontsStylesheet)),
		markup.Elem(atom.Link, markup.Attrs("rel", "stylesheet", "href", site.Stylesheet)),
	)
}

func sidebar(site Site, social records.LinkTable) *html.Node {
	return markup.Elem(atom.Aside, markup.Attrs("class", "sidebar"),
		markup.Elem(atom.Div, markup.Attrs("class", "profile-header"),
			markup.Elem(atom.Img, markup.Attrs("class", "profile-photo", "src", site.Photo, "alt", "Portrait of "+site.Name)),
			markup.Elem(atom.H1, nil, markup.Text(site.Name)),
		),
		SocialNav(social, site.SocialOrder),
	)
}

// SocialNav renders the links of order that are present in links. The CV link
// is marked as a download. An empty order means DefaultSocialOrder.
func SocialNav(links records.LinkTable, order []string) *html.Node {
	if len(order) == 0 {
		order = DefaultSocialOrder
	}
	nav := markup.Elem(atom.Nav, markup.Attrs("class", "social-links"))
	for _, label := range order {
		href, ok := links.Lookup(label)
		if !ok {
			continue
		}
		attrs := markup.Attrs("href", href)
		if label == "CV" {
			attrs = append(attrs, markup.Attrs("download", "")...)
		}
		markup.Append(nav, markup.Elem(atom.A, attrs, markup.Text(label)))
	}
	return nav
}

// BioSection renders every bio paragraph through the label extractor.
func BioSection(paragraphs []string) *html.Node {
	container := markup.Elem(atom.Div, markup.Attrs("id", "bio-content"))
	for _, para := range paragraphs {
		markup.Append(container, markup.Elem(atom.P, nil, linkify.Nodes(para)...))
	}
	return markup.Elem(atom.Section, markup.Attrs("class", "section", "id", "bio"),
		markup.Elem(atom.H2, nil, markup.Text("Bio")),
		container,
	)
}

// ResearchSection lists rendered publication entries in the given order.
func ResearchSection(entries []*html.Node) *html.Node {
	return markup.Elem(atom.Section, markup.Attrs("class", "section", "id", "publications"),
		append([]*html.Node{markup.Elem(atom.H2, nil, markup.Text("Research"))}, entries...)...,
	)
}

func footer(name string) *html.Node {
	return markup.Elem(atom.Footer, markup.Attrs("class", "site-footer"),
		markup.Elem(atom.P, nil,
			markup.Text("© "),
			markup.Elem(atom.Span, markup.Attrs("id", copyYearID)),
			markup.Text(" "+name),
		),
	)
}
