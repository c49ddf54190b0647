package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/homepage/internal/markup"
	"github.com/dgallion1/homepage/internal/pubassets"
	"github.com/dgallion1/homepage/internal/records"
)

// Publication renders one article.publication entry. Only the title heading,
// meta line and abstract disclosure are always present; everything else is
// omitted when its source field or asset is missing.
func Publication(pub records.Publication, assets pubassets.Assets, links records.LinkTable) *html.Node {
	media := markup.Elem(atom.Div, markup.Attrs("class", "pub-media"))
	if assets.Illustration != "" {
		markup.Append(media, markup.Elem(atom.Img, markup.Attrs(
			"src", assets.Illustration,
			"alt", "Visualization for "+pub.Title,
		)))
	}

	content := markup.Elem(atom.Div, markup.Attrs("class", "pub-content"),
		markup.Elem(atom.H3, nil, markup.Text(pub.Title)),
		Meta(pub.Authors, pub.Year, links),
		abstract(assets.Abstract),
		comments(pub.Comments),
		pubLinks(pub.CodeLink, pub.PaperLink),
	)

	return markup.Elem(atom.Article, markup.Attrs("class", "publication"), media, content)
}

func abstract(paragraphs []string) *html.Node {
	body := markup.Elem(atom.Div, markup.Attrs("class", "pub-abstract-body"))
	for _, para := range paragraphs {
		markup.Append(body, markup.Elem(atom.P, nil, markup.Text(para)))
	}
	return markup.Elem(atom.Details, markup.Attrs("class", "pub-abstract"),
		markup.Elem(atom.Summary, nil, markup.Text("Abstract")),
		body,
	)
}

func comments(text string) *html.Node {
	if text == "" {
		return nil
	}
	return markup.Elem(atom.P, markup.Attrs("class", "pub-comments"), markup.Text(text))
}

func pubLinks(code, paper string) *html.Node {
	if code == "" && paper == "" {
		return nil
	}
	div := markup.Elem(atom.Div, markup.Attrs("class", "pub-links"))
	if code != "" {
		markup.Append(div, markup.Elem(atom.A, markup.Attrs("class", "pub-link", "href", code), markup.Text("[code]")))
	}
	if paper != "" {
		markup.Append(div, markup.Elem(atom.A, markup.Attrs("class", "pub-link", "href", paper), markup.Text("[paper]")))
	}
	return div
}
