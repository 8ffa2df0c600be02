package notes

import (
	"encoding/xml"
	"time"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description rssCDATA `xml:"description"`
}

type rssCDATA struct {
	Text string `xml:",cdata"`
}

// Feed renders feed.xml, an RSS 2.0 channel of posts in the order given.
// Posts without a parseable date are stamped with the build time.
func Feed(site head.Site, posts []content.Post, buildTime time.Time) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pub := buildTime
		if t, ok := content.ParseDate(p.Date); ok {
			pub = t
		}
		link := site.NormalizeURL("/blog/" + p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			PubDate:     pub.UTC().Format(time.RFC1123Z),
			Description: rssCDATA{Text: p.Excerpt},
		})
	}
	return marshalXML(rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:         site.Name + " Blog",
			Link:          site.NormalizeURL("/blog"),
			Description:   site.DefaultDescription,
			Language:      "en-us",
			LastBuildDate: buildTime.UTC().Format(time.RFC1123Z),
			Items:         items,
		},
	})
}
