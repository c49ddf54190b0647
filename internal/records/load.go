package records

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dgallion1/homepage/internal/parser"
)

// ErrPublicationsMissing is returned when the publications table cannot be read.
var ErrPublicationsMissing = errors.New("publications table missing")

// LoadAuthorLinks reads a name,url table. Rows with an empty name or url are
// skipped; a missing file yields an empty table.
func LoadAuthorLinks(fsys fs.FS, name string) (LinkTable, error) {
	links := LinkTable{}
	rows, err := readRows(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return links, nil
	}
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		author, url := row.Get("name"), row.Get("url")
		if author != "" && url != "" {
			links.Set(author, url)
		}
	}
	return links, nil
}

// LoadSocialLinks reads a type,link table on top of the implicit Email entry.
// Rows with an empty type or link never replace an existing entry.
func LoadSocialLinks(fsys fs.FS, name, email string) (LinkTable, error) {
	links := LinkTable{}
	if email != "" {
		links.Set("Email", "mailto:"+email)
	}
	rows, err := readRows(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return links, nil
	}
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		label, href := row.Get("type"), row.Get("link")
		if label != "" && href != "" {
			links.Set(label, href)
		}
	}
	return links, nil
}

// LoadPublications reads publications.csv in file order. Unlike the other
// inputs the table is required.
func LoadPublications(fsys fs.FS, name string) ([]Publication, error) {
	rows, err := readRows(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPublicationsMissing, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPublicationsMissing, err)
	}

	pubs := make([]Publication, 0, len(rows))
	for _, row := range rows {
		pubs = append(pubs, Publication{
			ID:        row.Get(ColPublication),
			Title:     row.Get(ColTitle),
			Authors:   row.Get(ColAuthors),
			Year:      row.Get(ColYear),
			Comments:  row.Get(ColComments),
			CodeLink:  row.Get(ColCodeLink),
			PaperLink: row.Get(ColPaperLink),
		})
	}
	return pubs, nil
}

// LoadParagraphs splits a text or markdown file into paragraphs. A missing
// file has no paragraphs.
func LoadParagraphs(fsys fs.FS, name string) ([]string, error) {
	p, err := parser.ForFile(name)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	paras, err := p.Paragraphs(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return paras, nil
}

func readRows(fsys fs.FS, name string) ([]parser.Row, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := (&parser.CSVParser{}).Rows(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rows, nil
}
