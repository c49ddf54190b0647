package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/homepage/internal/config"
	"github.com/dgallion1/homepage/internal/markup"
	"github.com/dgallion1/homepage/internal/pubassets"
	"github.com/dgallion1/homepage/internal/records"
	"github.com/dgallion1/homepage/internal/render"
)

// Asset file names inside the assets and publications directories.
const (
	BioFile          = "bio.txt"
	SocialLinksFile  = "links.csv"
	AuthorLinksFile  = "coauthor_links.csv"
	PublicationsFile = "publications.csv"
)

// Result describes one finished build.
type Result struct {
	HTML         []byte
	ContentHash  string
	Publications int
	Path         string // empty when the document was not written
}

// Builder regenerates the homepage from the site root. Every run reads all
// inputs fresh; nothing is cached between runs.
type Builder struct {
	mu sync.Mutex // serializes Run

	cfg    config.Config
	fsys   fs.FS
	log    *slog.Logger
	status *Status
}

// NewBuilder reads inputs from fsys, which is rooted at cfg.Root.
func NewBuilder(cfg config.Config, fsys fs.FS, log *slog.Logger) *Builder {
	return &Builder{cfg: cfg, fsys: fsys, log: log, status: NewStatus()}
}

// Status exposes the state of the latest build.
func (b *Builder) Status() *Status {
	return b.status
}

// build renders the document in memory. Callers hold b.mu.
func (b *Builder) build(ctx context.Context) (*Result, error) {
	b.status.SetPhase("loading")
	assetsDir := fsPath(b.cfg.AssetsDir)
	pubsDir := fsPath(b.cfg.PublicationsDir)

	pubs, err := records.LoadPublications(b.fsys, path.Join(pubsDir, PublicationsFile))
	if err != nil {
		b.status.Fail("loading", err)
		return nil, err
	}
	authorLinks, err := records.LoadAuthorLinks(b.fsys, path.Join(assetsDir, AuthorLinksFile))
	if err != nil {
		b.log.Warn("author links unreadable, rendering names as text", "error", err)
		authorLinks = records.LinkTable{}
	}
	social, err := records.LoadSocialLinks(b.fsys, path.Join(assetsDir, SocialLinksFile), b.cfg.Email)
	if err != nil {
		b.log.Warn("social links unreadable, using defaults", "error", err)
		social = records.LinkTable{}
		social.Set("Email", "mailto:"+b.cfg.Email)
	}
	bio, err := records.LoadParagraphs(b.fsys, path.Join(assetsDir, BioFile))
	if err != nil {
		b.log.Warn("bio unreadable, leaving section empty", "error", err)
		bio = nil
	}
	b.log.Debug("inputs loaded",
		"publications", len(pubs),
		"author_links", len(authorLinks),
		"social_links", len(social),
		"bio_paragraphs", len(bio),
	)

	b.status.SetPhase("rendering")
	matcher := pubassets.NewMatcher(b.fsys, pubsDir, b.log)
	entries, err := b.renderEntries(ctx, pubs, matcher, authorLinks)
	if err != nil {
		b.status.Fail("rendering", err)
		return nil, err
	}

	doc := render.Document(render.Page{
		Site: render.Site{
			Name:        b.cfg.Name,
			Title:       b.cfg.Title,
			Photo:       b.cfg.Photo,
			Stylesheet:  b.cfg.Stylesheet,
			SocialOrder: b.cfg.SocialOrder,
		},
		Social:  social,
		Bio:     bio,
		Entries: entries,
	})

	var buf bytes.Buffer
	if err := markup.Render(&buf, doc); err != nil {
		err = fmt.Errorf("render document: %w", err)
		b.status.Fail("rendering", err)
		return nil, err
	}

	return &Result{
		HTML:         buf.Bytes(),
		ContentHash:  ContentHashHex(buf.Bytes()),
		Publications: len(pubs),
	}, nil
}

// Run builds the document and overwrites the output file.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Page links are relative to the site root, so the document must live there.
	if err := b.cfg.Validate(); err != nil {
		err = fmt.Errorf("invalid configuration: %w", err)
		b.status.Fail("validating", err)
		return nil, err
	}

	res, err := b.build(ctx)
	if err != nil {
		return nil, err
	}

	b.status.SetPhase("writing")
	out := b.cfg.OutputPath()
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		err = fmt.Errorf("create output dir: %w", err)
		b.status.Fail("writing", err)
		return nil, err
	}
	if err := os.WriteFile(out, res.HTML, 0o644); err != nil {
		err = fmt.Errorf("write %s: %w", out, err)
		b.status.Fail("writing", err)
		return nil, err
	}
	res.Path = out

	b.status.Complete(res.ContentHash, res.Publications)
	b.log.Info("wrote homepage",
		"path", out,
		"publications", res.Publications,
		"bytes", len(res.HTML),
		"sha256", res.ContentHash,
	)
	return res, nil
}

// renderEntries renders one entry per publication with bounded concurrency.
// Entries land in their row's slot, so output order is table order.
func (b *Builder) renderEntries(ctx context.Context, pubs []records.Publication, matcher *pubassets.Matcher, links records.LinkTable) ([]*html.Node, error) {
	entries := make([]*html.Node, len(pubs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.RenderWorkers, 1))

	for i, pub := range pubs {
		i, pub := i, pub
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if pub.ID == "" && pub.Title == "" {
				b.log.Warn("publication row has neither id nor title", "row", i+2)
			}
			assets := matcher.Resolve(pub.ID)
			b.log.Debug("resolved publication assets",
				"id", pub.ID,
				"folder", assets.Folder,
				"illustration", assets.Illustration != "",
				"abstract_paragraphs", len(assets.Abstract),
			)
			entries[i] = render.Publication(pub, assets, links)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render publications: %w", err)
	}
	return entries, nil
}

// fsPath converts a configured directory into an io/fs path.
func fsPath(dir string) string {
	return path.Clean(filepath.ToSlash(dir))
}
