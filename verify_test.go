package notes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspectPage(t *testing.T) {
	html := `<!doctype html><html><head><title>X</title>` +
		`<meta name="description" content="d"><meta property="og:title" content="X"><meta charset="utf-8">` +
		`<link rel="canonical" href="https://example.com/blog/x">` +
		`<script type="application/ld+json">{"@type":"WebSite"}</script></head>` +
		`<body><div id="root"></div><script>window.__REPOSITORY_STATS__ = {};</script></body></html>`

	r, err := InspectPage(html)
	require.NoError(t, err)
	require.Equal(t, PageReport{
		Titles:     1,
		Title:      "X",
		Canonicals: 1,
		Canonical:  "https://example.com/blog/x",
		Metas:      2,
		JSONLD:     1,
		Bootstraps: 1,
	}, r)
	require.NoError(t, r.Validate())
}

func TestValidate_RejectsDuplicates(t *testing.T) {
	r, err := InspectPage(`<html><head><title>a</title><title>b</title></head><body></body></html>`)
	require.NoError(t, err)
	require.Error(t, r.Validate())

	require.Error(t, PageReport{Canonicals: 2}.Validate())
	require.Error(t, PageReport{Bootstraps: 2}.Validate())
	require.NoError(t, PageReport{}.Validate())
}
