package notes

import (
	"strings"

	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

var robotsAgents = []string{"Googlebot", "Bingbot", "Twitterbot", "facebookexternalhit", "*"}

// Robots renders robots.txt allowing every crawler and naming the sitemap.
func Robots(site head.Site) []byte {
	var b strings.Builder
	for _, agent := range robotsAgents {
		b.WriteString("User-agent: " + agent + "\nAllow: /\n\n")
	}
	b.WriteString("Sitemap: " + site.NormalizeURL("/sitemap.xml") + "\n")
	return []byte(b.String())
}
