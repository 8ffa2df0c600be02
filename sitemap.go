package notes

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapInput is what the sitemap is built from.
type SitemapInput struct {
	Site             head.Site
	Routes           []string
	Posts            []content.Post
	Stats            *content.RepositoryStats
	RepositoryPrefix string
	BuildTime        time.Time
}

// Sitemap renders sitemap.xml for every route. Blog routes carry their
// post date, repository routes the payload's generation time, and every
// other route the build time.
func Sitemap(in SitemapInput) ([]byte, error) {
	buildDate := in.BuildTime.UTC().Format(time.RFC3339)
	repoDate := buildDate
	if t, ok := content.ParseDate(in.Stats.GeneratedAt()); ok {
		repoDate = t.Format(time.RFC3339)
	}
	postDates := make(map[string]string, len(in.Posts))
	for _, p := range in.Posts {
		if t, ok := content.ParseDate(p.Date); ok {
			postDates["/blog/"+p.Slug] = t.Format(time.RFC3339)
		}
	}

	urls := make([]sitemapURL, 0, len(in.Routes))
	for _, route := range in.Routes {
		lastmod := buildDate
		switch {
		case strings.HasPrefix(route, "/blog/"):
			lastmod = postDates[route]
		case in.RepositoryPrefix != "" && strings.HasPrefix(route, in.RepositoryPrefix):
			lastmod = repoDate
		}
		urls = append(urls, sitemapURL{Loc: in.Site.NormalizeURL(route), LastMod: lastmod})
	}
	return marshalXML(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func marshalXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
