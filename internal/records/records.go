// Package records holds the tabular inputs of the homepage build and the
// loaders that read them from the site's asset files.
package records

import "golang.org/x/text/unicode/norm"

// LinkTable maps a display name to a URL. Keys are stored in NFC so that
// composed and decomposed spellings of the same name resolve alike.
type LinkTable map[string]string

// Set stores url under name; a later Set for the same name wins.
func (t LinkTable) Set(name, url string) {
	t[norm.NFC.String(name)] = url
}

// Lookup returns the URL for name and whether a non-empty one exists.
func (t LinkTable) Lookup(name string) (string, bool) {
	url, ok := t[norm.NFC.String(name)]
	return url, ok && url != ""
}

// Publication is one row of publications.csv.
type Publication struct {
	ID        string // folder prefix under the publications directory
	Title     string
	Authors   string // comma or semicolon separated
	Year      string
	Comments  string
	CodeLink  string
	PaperLink string
}

// Column names of publications.csv.
const (
	ColPublication = "publication"
	ColTitle       = "title"
	ColAuthors     = "authors"
	ColYear        = "year"
	ColComments    = "comments"
	ColCodeLink    = "code_link"
	ColPaperLink   = "paper_link"
)
