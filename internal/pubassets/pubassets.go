// Package pubassets locates the companion folder of a publication and the
// illustration and abstract files inside it.
package pubassets

import (
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/dgallion1/homepage/internal/records"
)

// File name patterns inside a publication folder.
const (
	IllustrationPattern = "*_illustration.*"
	AbstractPattern     = "*_abstract.txt"
	// AbstractMarkdownPattern is consulted only when no text abstract exists.
	AbstractMarkdownPattern = "*_abstract.md"
)

// Assets is what was found for one publication. Every field is optional.
type Assets struct {
	Folder       string   // slash path within the site FS
	Illustration string   // slash path within the site FS
	Abstract     []string // paragraphs
}

// Matcher resolves publication identifiers against folders named "<id>_*"
// beneath dir. When several candidates match, the lexicographically first wins.
type Matcher struct {
	fsys fs.FS
	dir  string
	log  *slog.Logger
}

func NewMatcher(fsys fs.FS, dir string, log *slog.Logger) *Matcher {
	return &Matcher{fsys: fsys, dir: dir, log: log}
}

// Folder returns the path of the first folder whose name starts with id+"_".
func (m *Matcher) Folder(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	names, err := m.sortedNames(m.dir, true)
	if err != nil {
		m.log.Debug("publications dir unreadable", "dir", m.dir, "error", err)
		return "", false
	}
	prefix := id + "_"
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return path.Join(m.dir, name), true
		}
	}
	return "", false
}

// FirstFile returns the first regular file in folder matching a glob pattern.
func (m *Matcher) FirstFile(folder, pattern string) (string, bool) {
	names, err := m.sortedNames(folder, false)
	if err != nil {
		m.log.Debug("publication folder unreadable", "folder", folder, "error", err)
		return "", false
	}
	for _, name := range names {
		if ok, _ := path.Match(pattern, name); ok {
			return path.Join(folder, name), true
		}
	}
	return "", false
}

// Resolve gathers the assets for a publication id. Missing or unreadable
// files are omitted rather than reported.
func (m *Matcher) Resolve(id string) Assets {
	var a Assets
	folder, ok := m.Folder(id)
	if !ok {
		return a
	}
	a.Folder = folder

	if img, ok := m.FirstFile(folder, IllustrationPattern); ok {
		a.Illustration = img
	}

	abstract, ok := m.FirstFile(folder, AbstractPattern)
	if !ok {
		abstract, ok = m.FirstFile(folder, AbstractMarkdownPattern)
	}
	if ok {
		paras, err := records.LoadParagraphs(m.fsys, abstract)
		if err != nil {
			m.log.Warn("abstract unreadable, omitting", "file", abstract, "error", err)
		}
		a.Abstract = paras
	}
	return a
}

// sortedNames lists the visible entries of dir, directories or regular files
// only, in lexicographic order.
func (m *Matcher) sortedNames(dir string, dirs bool) ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || e.IsDir() != dirs {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}
