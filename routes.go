package notes

import (
	"path"
	"strings"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/views"
)

// RouteSources are the inputs to route enumeration. Repositories is nil when
// the remote fetch failed.
type RouteSources struct {
	Static           []string
	Articles         []content.ArticleEntry
	Projects         []content.ProjectSource
	Repositories     []content.Repository
	RepositoryPrefix string
}

// cleanRoute gives a configured static route its canonical form: rooted,
// without a trailing slash and with dot segments resolved. "/blog/" and
// "blog" both become "/blog".
func cleanRoute(r string) string {
	r = strings.TrimSpace(r)
	if r == "" {
		return ""
	}
	if !strings.HasPrefix(r, "/") {
		r = "/" + r
	}
	return path.Clean(r)
}

// EnumerateRoutes combines every route source into one ordered list with
// duplicates removed. Sources are taken static, then articles, then
// projects, then repositories; the first occurrence of a path wins.
func EnumerateRoutes(src RouteSources) []string {
	seen := make(map[string]struct{})
	var routes []string
	add := func(route string) {
		if _, ok := seen[route]; ok {
			return
		}
		seen[route] = struct{}{}
		routes = append(routes, route)
	}

	for _, r := range src.Static {
		if r = cleanRoute(r); r != "" {
			add(r)
		}
	}
	for _, e := range src.Articles {
		if !content.IsPublishable(e) {
			continue
		}
		if slug := content.BuildSlug(e); slug != "" {
			add("/blog/" + slug)
		}
	}
	for _, p := range src.Projects {
		if p.Slug != "" {
			add("/projects/" + p.Slug)
		}
	}
	prefix := views.NormalizePrefix(src.RepositoryPrefix)
	for _, r := range src.Repositories {
		if r.Name != "" {
			add(prefix + content.EncodeURIComponent(r.Name))
		}
	}
	return routes
}
