package pipeline

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/homepage/internal/config"
	"github.com/dgallion1/homepage/internal/markup/markuptest"
	"github.com/dgallion1/homepage/internal/records"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func testSite(t *testing.T) (config.Config, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "assets/bio.txt", "I am a researcher at the Example Lab (https://lab.example).\n\nSecond paragraph.\n")
	writeFile(t, root, "assets/links.csv", "type,link\nGoogle Scholar,https://scholar.example\nLinkedIn,https://linkedin.example\n")
	writeFile(t, root, "assets/coauthor_links.csv", "name,url\nB. Two,https://two.example\n")
	writeFile(t, root, "assets/publications/publications.csv",
		"publication,title,authors,year,comments,code_link,paper_link\n"+
			"3,Third Paper,A. One; B. Two,2024,,https://code.example/3,\n"+
			"1,First Paper,A. One,2022,Workshop,,https://paper.example/1\n"+
			"2,Second Paper,,2023,,,\n")
	writeFile(t, root, "assets/publications/3_alpha/alpha_illustration.png", "png")
	writeFile(t, root, "assets/publications/3_alpha/alpha_abstract.txt", "Alpha abstract.\n")
	writeFile(t, root, "assets/publications/3_beta/beta_illustration.png", "png")
	writeFile(t, root, "assets/publications/1_first/first_abstract.md", "A *markdown* abstract.\n")

	return config.Config{
		Root:            root,
		AssetsDir:       "assets",
		PublicationsDir: "assets/publications",
		Output:          "index.html",
		Name:            "Ada Lovelace",
		Email:           "ada@example.org",
		Photo:           "assets/profile.jpg",
		Stylesheet:      "styles.css",
		RenderWorkers:   3,
	}, root
}

func newTestBuilder(cfg config.Config) *Builder {
	return NewBuilder(cfg, os.DirFS(cfg.Root), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuilder_Run(t *testing.T) {
	cfg, root := testSite(t)
	b := newTestBuilder(cfg)

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "index.html"), res.Path)
	assert.Equal(t, 3, res.Publications)

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.HTML, written)
	out := string(written)

	assert.Contains(t, out, `at the <a href="https://lab.example">Example Lab</a>.`)
	assert.NotContains(t, out, ">https://lab.example<")

	// Publications in table order.
	third := strings.Index(out, "<h3>Third Paper</h3>")
	first := strings.Index(out, "<h3>First Paper</h3>")
	second := strings.Index(out, "<h3>Second Paper</h3>")
	assert.True(t, third >= 0 && third < first && first < second, "publication order: %d %d %d", third, first, second)

	assert.Contains(t, out, `<img src="assets/publications/3_alpha/alpha_illustration.png" alt="Visualization for Third Paper"/>`)
	assert.NotContains(t, out, "3_beta")
	assert.Contains(t, out, `<p>Alpha abstract.</p>`)
	assert.Contains(t, out, `<p>A markdown abstract.</p>`)
	assert.Contains(t, out, `A. One, <a href="https://two.example">B. Two</a> · 2024`)

	// Social nav: Email, LinkedIn, Google Scholar; no CV.
	nav := out[strings.Index(out, `<nav class="social-links">`):]
	nav = nav[:strings.Index(nav, "</nav>")]
	assert.Equal(t, `<nav class="social-links"><a href="mailto:ada@example.org">Email</a><a href="https://linkedin.example">LinkedIn</a><a href="https://scholar.example">Google Scholar</a>`, nav)

	snap := b.Status().Snapshot()
	assert.Equal(t, StateCompleted, snap.State)
	assert.Equal(t, res.ContentHash, snap.ContentHash)
	assert.Equal(t, 3, snap.Publications)
}

func TestBuilder_Idempotent(t *testing.T) {
	cfg, _ := testSite(t)

	first, err := newTestBuilder(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.RenderWorkers = 1
	second, err := newTestBuilder(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.ContentHash, second.ContentHash)
	assert.NotContains(t, string(first.HTML), time.Now().Format("2006")+" Ada")
}

func TestBuilder_MissingPublicationsIsFatal(t *testing.T) {
	cfg, root := testSite(t)
	require.NoError(t, os.Remove(filepath.Join(root, "assets/publications/publications.csv")))
	b := newTestBuilder(cfg)

	_, err := b.Run(context.Background())
	require.ErrorIs(t, err, records.ErrPublicationsMissing)
	assert.Equal(t, StateFailed, b.Status().Snapshot().State)

	_, statErr := os.Stat(filepath.Join(root, "index.html"))
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestBuilder_OptionalInputsMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "assets/publications/publications.csv", "publication,title\n,\n7,Lonely\n")
	cfg := config.Config{
		Root: root, AssetsDir: "assets", PublicationsDir: "assets/publications",
		Output: "home.html", Name: "N", Email: "n@example.org", RenderWorkers: 2,
	}

	res, err := newTestBuilder(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "home.html"), res.Path)
	out := string(res.HTML)
	assert.Contains(t, out, `<div id="bio-content"></div>`)
	assert.Contains(t, out, `<nav class="social-links"><a href="mailto:n@example.org">Email</a></nav>`)
	assert.Contains(t, out, "<h3>Lonely</h3>")
	assert.Equal(t, 2, strings.Count(out, `<article class="publication">`))
}

func TestBuilder_RejectsNestedOutput(t *testing.T) {
	cfg, root := testSite(t)
	cfg.Output = "site/index.html"

	b := newTestBuilder(cfg)
	_, err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOMEPAGE_OUTPUT")
	assert.Equal(t, StateFailed, b.Status().Snapshot().State)

	_, statErr := os.Stat(filepath.Join(root, "site"))
	assert.True(t, os.IsNotExist(statErr), "nothing should be written outside the root file")
}

func TestBuilder_AssetLinksResolveFromOutput(t *testing.T) {
	cfg, root := testSite(t)
	res, err := newTestBuilder(cfg).Run(context.Background())
	require.NoError(t, err)

	doc, err := html.Parse(bytes.NewReader(res.HTML))
	require.NoError(t, err)
	var srcs []string
	for _, img := range markuptest.FindAll(doc, atom.Img) {
		if src, ok := markuptest.Attr(img, "src"); ok {
			srcs = append(srcs, src)
		}
	}
	require.Contains(t, srcs, "assets/publications/3_alpha/alpha_illustration.png")
	outDir := filepath.Dir(res.Path)
	_, err = os.Stat(filepath.Join(outDir, filepath.FromSlash("assets/publications/3_alpha/alpha_illustration.png")))
	assert.NoError(t, err)
	assert.Equal(t, root, outDir)
}

func TestBuilder_CanceledContext(t *testing.T) {
	cfg, _ := testSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestBuilder(cfg).build(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestContentHashHex(t *testing.T) {
	// SHA-256 of "hello world" is well-known.
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", ContentHashHex([]byte("hello world")))
}

func TestStatus_Transitions(t *testing.T) {
	s := NewStatus()
	assert.Equal(t, StateIdle, s.Snapshot().State)

	s.SetPhase("loading")
	assert.Equal(t, StateBuilding, s.Snapshot().State)

	s.Complete("abc", 2)
	s.Fail("writing", assert.AnError)
	snap := s.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, "abc", snap.ContentHash)
	assert.Equal(t, 2, snap.Builds)
	assert.Equal(t, assert.AnError.Error(), snap.Error)
}

func TestBuilder_OutputReparses(t *testing.T) {
	cfg, _ := testSite(t)
	res, err := newTestBuilder(cfg).build(context.Background())
	require.NoError(t, err)

	doc, err := html.Parse(bytes.NewReader(res.HTML))
	require.NoError(t, err)

	articles := markuptest.FindAll(doc, atom.Article)
	require.Len(t, articles, 3)
	assert.Equal(t, "Third Paper", markuptest.TextContent(markuptest.FindAll(articles[0], atom.H3)[0]))

	details := markuptest.FindAll(articles[0], atom.Details)
	require.Len(t, details, 1)
	assert.Equal(t, "Abstract", markuptest.TextContent(markuptest.FindAll(details[0], atom.Summary)[0]))

	links := markuptest.ByClass(articles[0], "pub-links")
	require.NotNil(t, links)
	assert.Equal(t, "[code]", markuptest.TextContent(links))
	assert.Nil(t, markuptest.ByClass(articles[2], "pub-links"))

	scripts := markuptest.FindAll(doc, atom.Script)
	require.Len(t, scripts, 1)
	assert.Contains(t, markuptest.TextContent(scripts[0]), "getFullYear")
}
