package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
)

const testTemplate = `<!doctype html><html><head><meta charset="utf-8"><!--app-head--></head>` +
	`<body><div id="root"><!--app-html--></div><!--app-state--><script type="module" src="/assets/app.js"></script></body></html>`

func TestParseTemplate_MissingPlaceholder(t *testing.T) {
	_, err := ParseTemplate(`<html><head><!--app-head--></head><body><!--app-html--></body></html>`)
	require.ErrorIs(t, err, ErrMissingPlaceholder)
	require.Contains(t, err.Error(), StatePlaceholder)
}

func TestExecute_ReplacesEachPlaceholderOnce(t *testing.T) {
	tpl, err := ParseTemplate(testTemplate + HTMLPlaceholder)
	require.NoError(t, err)

	out := tpl.Execute(Page{Head: "<title>X</title>", HTML: "<p>body</p>"}, "")
	require.Contains(t, out, "<head><meta charset=\"utf-8\"><title>X</title></head>")
	require.Contains(t, out, `<div id="root"><p>body</p></div>`)
	require.Equal(t, 1, strings.Count(out, HTMLPlaceholder), "only the first occurrence is replaced")
	require.NotContains(t, out, StatePlaceholder)
}

func TestExecute_NullHeadLeavesEmpty(t *testing.T) {
	tpl, err := ParseTemplate(testTemplate)
	require.NoError(t, err)
	out := tpl.Execute(Page{HTML: "<p>x</p>"}, "")
	require.Contains(t, out, `<head><meta charset="utf-8"></head>`)
}

func TestBootstrapScript_Nil(t *testing.T) {
	script, err := BootstrapScript(nil)
	require.NoError(t, err)
	require.Empty(t, script)
}

func TestBootstrapScript_EscapesScriptClose(t *testing.T) {
	payload := `{"repositories":[{"name":"evil","description":"</script><script>alert(1)</script>","extra":{"kept":true}}]}`
	stats, err := content.ParseRepositoryStats([]byte(payload))
	require.NoError(t, err)

	script, err := BootstrapScript(stats)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(script, "<script>window.__REPOSITORY_STATS__ = {"))
	require.Equal(t, 1, strings.Count(script, "</script>"))
	require.Contains(t, script, `\u003c/script\u003e`)
	require.Contains(t, script, `"kept":true`, "unknown fields survive")

	tpl, err := ParseTemplate(testTemplate)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tpl.Execute(Page{HTML: "<p>x</p>"}, script)))
	require.NoError(t, err)

	var bootstraps int
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), BootstrapGlobal) {
			bootstraps++
		}
	})
	require.Equal(t, 1, bootstraps)
	require.Equal(t, 2, doc.Find("script").Length(), "bootstrap plus the module entry, nothing injected")
}

func TestResolveTemplate_Chain(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(stale, []byte("<html>already prerendered</html>"), 0o644))
	cached := filepath.Join(dir, "cache", "index.template.html")
	require.NoError(t, WriteFile(cached, []byte(testTemplate)))

	name, text, err := ResolveTemplate([]string{"", stale, filepath.Join(dir, "client", "index.html"), cached}, nil)
	require.NoError(t, err)
	require.Equal(t, cached, name)
	require.Equal(t, testTemplate, text)
}

func TestResolveTemplate_Scan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shell.html"), []byte(testTemplate), 0o644))

	name, _, err := ResolveTemplate(nil, []string{dir})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "shell.html"), name)
}

func TestResolveTemplate_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, _, err := ResolveTemplate([]string{filepath.Join(dir, "missing.html")}, []string{dir})
	require.ErrorIs(t, err, ErrTemplateNotFound)
	require.Contains(t, err.Error(), "missing.html")
}

func TestCacheTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cache", "prerender", "index.template.html")
	require.NoError(t, cacheTemplate(path, testTemplate))
	require.NoError(t, cacheTemplate(path, testTemplate))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, testTemplate, string(data))
}
