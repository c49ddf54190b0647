package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_ParagraphsAsPlainText(t *testing.T) {
	input := "We study *sparse* models.\n\nResults use `go test` and [links](https://example.org).\n"
	p := &MarkdownParser{}
	paras, err := p.Paragraphs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"We study sparse models.",
		"Results use go test and links.",
	}
	if len(paras) != len(want) {
		t.Fatalf("expected %d paragraphs, got %q", len(want), paras)
	}
	for i, w := range want {
		if paras[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paras[i])
		}
	}
}

func TestMarkdownParser_SoftBreaksKept(t *testing.T) {
	p := &MarkdownParser{}
	paras, err := p.Paragraphs(strings.NewReader("line one\nline two"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if paras[0] != "line one\nline two" {
		t.Errorf("expected soft break preserved, got %q", paras[0])
	}
}

func TestMarkdownParser_HeadingsAndCode(t *testing.T) {
	input := "# Abstract\n\nIntro.\n\n---\n\n```\nfit(x)\n```\n"
	p := &MarkdownParser{}
	paras, err := p.Paragraphs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Abstract", "Intro.", "fit(x)"}
	if len(paras) != len(want) {
		t.Fatalf("expected %d paragraphs, got %q", len(want), paras)
	}
	for i, w := range want {
		if paras[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paras[i])
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	paras, err := p.Paragraphs(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(paras))
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"1_abstract.txt", false},
		{"1_abstract.md", false},
		{"notes.MARKDOWN", false},
		{"paper.pdf", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): expected error=%v, got %v", tt.filename, tt.wantErr, err)
		}
	}
}
