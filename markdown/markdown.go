// Package markdown renders article bodies to HTML as templ components and
// derives plain-text excerpts from Markdown summaries.
package markdown

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var (
	reFence       = regexp.MustCompile("(?s)```.*?```")
	reHeading     = regexp.MustCompile(`(?m)^#+\s+`)
	reQuote       = regexp.MustCompile(`(?m)^\s*>\s?`)
	reImage       = regexp.MustCompile(`!\[[^\]]*]\([^)]+\)`)
	reLink        = regexp.MustCompile(`\[([^\]]+)]\([^)]+\)`)
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*(.+?)\*`)
	reInlineCode  = regexp.MustCompile("`(.+?)`")
	reDecorations = regexp.MustCompile(`[_~]`)
	reSpace       = regexp.MustCompile(`\s+`)
	reFrontmatter = regexp.MustCompile(`(?s)\A---\r?\n.*?\r?\n---\r?\n?`)
)

// Markdown returns a templ.Component that renders md as HTML. Frontmatter at
// the top of md is skipped.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(w, md)
	})
}

// Render writes the HTML representation of md to w.
func Render(w io.Writer, md string) error {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(StripFrontmatter(md)), &buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// StripFrontmatter removes a leading YAML frontmatter block.
func StripFrontmatter(md string) string {
	return reFrontmatter.ReplaceAllString(md, "")
}

// Strip reduces Markdown to a single line of plain text for excerpts and
// meta descriptions.
func Strip(md string) string {
	s := reFence.ReplaceAllString(md, "")
	s = reHeading.ReplaceAllString(s, "")
	s = reQuote.ReplaceAllString(s, "")
	s = reImage.ReplaceAllString(s, "")
	s = reLink.ReplaceAllString(s, "$1")
	s = reBold.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reInlineCode.ReplaceAllString(s, "$1")
	s = reDecorations.ReplaceAllString(s, "")
	s = reSpace.ReplaceAllString(s, " ")
	s = strings.TrimLeft(s, `"`)
	s = strings.TrimRight(s, `"`)
	return strings.TrimSpace(s)
}
