package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, md))
	return buf.String()
}

func TestRenderHeadingsGetIDs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1">Heading 1</h1>`},
		{"## Event Driven Design", `<h2 id="event-driven-design">Event Driven Design</h2>`},
		{"### Heading 3", `<h3 id="heading-3">Heading 3</h3>`},
	}
	for _, tt := range tests {
		require.Contains(t, render(t, tt.input), tt.expected)
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"hello\")\n```")
	require.Contains(t, got, `<pre><code class="language-go">`)
	require.Contains(t, got, "fmt.Println(&quot;hello&quot;)")
}

func TestRenderSkipsFrontmatter(t *testing.T) {
	got := render(t, "---\ntitle: Hello\nslug: x\n---\n# Body\n")
	require.NotContains(t, got, "title: Hello")
	require.Contains(t, got, "Body</h1>")
}

func TestRenderTableExtension(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.Contains(t, got, "<table>")
	require.Contains(t, got, "<td>1</td>")
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("*hi*").Render(context.Background(), &buf))
	require.Equal(t, "<p><em>hi</em></p>", strings.TrimSpace(buf.String()))
}

func TestStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold** and *italic*", "bold and italic"},
		{"## Heading\nBody text", "Heading Body text"},
		{"See [the docs](https://example.com) now", "See the docs now"},
		{"![alt](/img.png)Caption", "Caption"},
		{"Use `go test` here", "Use go test here"},
		{"> quoted\n> lines", "quoted lines"},
		{"before\n```\ncode\n```\nafter", "before after"},
		{`"Quoted summary"`, "Quoted summary"},
		{"snake_case ~strike~", "snakecase strike"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, Strip(tt.input), "Strip(%q)", tt.input)
	}
}
