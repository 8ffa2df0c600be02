package views

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// DefaultRepositoryPrefix is where repository detail pages live.
const DefaultRepositoryPrefix = "/now/repositories/"

// Page names reported by Resolve.
const (
	PageHome       = "home"
	PageBlog       = "blog"
	PageBlogPost   = "blog_post"
	PageAbout      = "about"
	PageProjects   = "projects"
	PageProject    = "project"
	PageContact    = "contact"
	PageNow        = "now"
	PageGitHub     = "github"
	PageRepository = "repository"
	PageVideos     = "videos"
	PageNotFound   = "not_found"
)

// Match is the outcome of resolving a location.
type Match struct {
	Page  string
	Param string
}

// Router maps locations to page components. BasePath is stripped from the
// front of every location before matching.
type Router struct {
	BasePath         string
	RepositoryPrefix string
	Data             Data
}

// NewRouter returns a Router with the repository prefix normalised.
func NewRouter(basePath, repositoryPrefix string, data Data) *Router {
	return &Router{
		BasePath:         basePath,
		RepositoryPrefix: NormalizePrefix(repositoryPrefix),
		Data:             data,
	}
}

// NormalizePrefix makes prefix begin and end with a slash, defaulting to
// DefaultRepositoryPrefix when empty.
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || prefix == "/" {
		return DefaultRepositoryPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// Resolve matches location against the route table.
func (r *Router) Resolve(location string) Match {
	path := r.strip(location)
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	prefix := NormalizePrefix(r.RepositoryPrefix)
	if rest, ok := strings.CutPrefix(path, prefix); ok && rest != "" {
		if name, err := url.PathUnescape(rest); err == nil {
			return Match{Page: PageRepository, Param: name}
		}
		return Match{Page: PageNotFound}
	}

	switch path {
	case "/":
		return Match{Page: PageHome}
	case "/blog":
		return Match{Page: PageBlog}
	case "/about":
		return Match{Page: PageAbout}
	case "/projects":
		return Match{Page: PageProjects}
	case "/contact":
		return Match{Page: PageContact}
	case "/now":
		return Match{Page: PageNow}
	case "/github":
		return Match{Page: PageGitHub}
	case "/videos":
		return Match{Page: PageVideos}
	}
	if slug, ok := segment(path, "/blog/"); ok {
		return Match{Page: PageBlogPost, Param: slug}
	}
	if slug, ok := segment(path, "/projects/"); ok {
		return Match{Page: PageProject, Param: slug}
	}
	return Match{Page: PageNotFound}
}

// Page returns the component for location, without the layout.
func (r *Router) Page(location string) templ.Component {
	d := r.Data
	prefix := NormalizePrefix(r.RepositoryPrefix)
	m := r.Resolve(location)
	switch m.Page {
	case PageHome:
		return Home(d)
	case PageBlog:
		return Blog(d)
	case PageBlogPost:
		for _, post := range d.Posts {
			if post.Slug == m.Param {
				return BlogPost(d, post)
			}
		}
	case PageAbout:
		return About(d)
	case PageProjects:
		return Projects(d)
	case PageProject:
		for _, pr := range d.Projects {
			if pr.Slug == m.Param {
				return ProjectDetail(d, pr)
			}
		}
	case PageContact:
		return Contact(d)
	case PageNow:
		return Now(d, prefix)
	case PageGitHub:
		return GitHub(d, prefix)
	case PageRepository:
		return RepositoryDetail(d, prefix, m.Param)
	case PageVideos:
		return Videos(d)
	}
	return NotFound(d)
}

// strip removes the base path like a router basename would.
func (r *Router) strip(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	base := strings.TrimRight(r.BasePath, "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if base != "" {
		if location == base {
			return "/"
		}
		if rest, ok := strings.CutPrefix(location, base+"/"); ok {
			return "/" + rest
		}
	}
	if location == "" {
		return "/"
	}
	return location
}

func segment(path, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
