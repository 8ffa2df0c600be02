package notes

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

var seoSite = head.Site{Name: "Example", URL: "https://example.com", BasePath: "/notes/", DefaultDescription: "Notes."}

func TestSitemap_LastModRules(t *testing.T) {
	stats, err := content.ParseRepositoryStats([]byte(`{"repositories":[],"metadata":{"generated_at":"2024-05-01T10:00:00Z"}}`))
	require.NoError(t, err)
	build := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	data, err := Sitemap(SitemapInput{
		Site:             seoSite,
		Routes:           []string{"/", "/blog/post-a", "/now/repositories/demo%2Frepo"},
		Posts:            []content.Post{{Slug: "post-a", Date: "2024-03-01"}},
		Stats:            stats,
		RepositoryPrefix: "/now/repositories/",
		BuildTime:        build,
	})
	require.NoError(t, err)

	var set sitemapURLSet
	require.NoError(t, xml.Unmarshal(data, &set))
	require.Equal(t, []sitemapURL{
		{Loc: "https://example.com/", LastMod: "2024-06-01T00:00:00Z"},
		{Loc: "https://example.com/blog/post-a", LastMod: "2024-03-01T00:00:00Z"},
		{Loc: "https://example.com/now/repositories/demo%2Frepo", LastMod: "2024-05-01T10:00:00Z"},
	}, set.URLs)
}

func TestSitemap_NoStatsFallsBackToBuildTime(t *testing.T) {
	data, err := Sitemap(SitemapInput{
		Site:             seoSite,
		Routes:           []string{"/now/repositories/x"},
		RepositoryPrefix: "/now/repositories/",
		BuildTime:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Contains(t, string(data), "<lastmod>2024-06-01T00:00:00Z</lastmod>")
}

func TestFeed(t *testing.T) {
	data, err := Feed(seoSite, []content.Post{{Slug: "a", Title: "A & B", Date: "2024-03-01", Excerpt: "x < y"}}, time.Now())
	require.NoError(t, err)
	out := string(data)
	require.True(t, strings.HasPrefix(out, xml.Header))
	require.Contains(t, out, `<rss version="2.0">`)
	require.Contains(t, out, "<title>A &amp; B</title>")
	require.Contains(t, out, "<![CDATA[x < y]]>")
	require.Contains(t, out, "<link>https://example.com/blog/a</link>")
	require.Contains(t, out, "Fri, 01 Mar 2024 00:00:00 +0000")
}

func TestRobots(t *testing.T) {
	out := string(Robots(seoSite))
	require.Contains(t, out, "User-agent: Googlebot\nAllow: /\n")
	require.Contains(t, out, "User-agent: *\nAllow: /\n")
	require.True(t, strings.HasSuffix(out, "Sitemap: https://example.com/sitemap.xml\n"))
}
