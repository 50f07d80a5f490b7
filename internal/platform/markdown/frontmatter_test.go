package markdown_test

import (
	"strings"
	"testing"

	"reflexum/internal/platform/markdown"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("---\ncourse: Math\nduration: 45\n---\n\n# Notes\nbody text\n")
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if meta["course"] != "Math" || meta["duration"] != 45 {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if !strings.HasPrefix(body, "\n# Notes") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutBlockReturnsContent(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("# Title\n")
	if err != nil || len(meta) != 0 || body != "# Title\n" {
		t.Fatalf("unexpected result meta=%v body=%q err=%v", meta, body, err)
	}
}

func TestSplitFrontmatterMalformedYAMLKeepsBody(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("---\ncourse: [unterminated\n---\nkept body\n")
	if err == nil {
		t.Fatalf("expected yaml error")
	}
	if meta != nil {
		t.Fatalf("expected nil meta, got %v", meta)
	}
	if body != "kept body\n" {
		t.Fatalf("expected body to survive, got %q", body)
	}
}

func TestSplitFrontmatterHandlesCRLF(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("---\r\ntype: assignment\r\n---\r\ntext\r\n")
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if meta["type"] != "assignment" || body != "text\n" {
		t.Fatalf("unexpected result meta=%v body=%q", meta, body)
	}
}

func TestRenderFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"type": "study-session", "duration": 30}, "## Notes\n")
	if err != nil {
		t.Fatalf("render frontmatter: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split rendered: %v", err)
	}
	if meta["type"] != "study-session" || meta["duration"] != 30 {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if body != "\n## Notes\n" {
		t.Fatalf("unexpected body %q", body)
	}
}
