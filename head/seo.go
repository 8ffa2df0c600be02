package head

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Site holds the site-wide SEO defaults that per-page Props are layered over.
type Site struct {
	Name               string
	URL                string // canonical origin, no trailing slash
	BasePath           string // deployment sub-path, "/" when served at the root
	DefaultTitle       string
	DefaultDescription string
	DefaultKeywords    string
	DefaultImage       string
}

// Props are the per-page overrides passed to Seo.
type Props struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Image       string
	Type        string // "website" (default) or "article"
	Robots      string
	JSONLD      []any
}

// Origin returns the canonical origin without a trailing slash.
func (s Site) Origin() string {
	return strings.TrimRight(s.URL, "/")
}

// Base returns the deployment sub-path without a trailing slash; "" when the
// site is served from the domain root.
func (s Site) Base() string {
	if s.BasePath == "" || s.BasePath == "/" {
		return ""
	}
	base := strings.TrimRight(s.BasePath, "/")
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

// NormalizeURL turns v into an absolute URL on the canonical origin.
// Absolute values are returned unchanged and values that already carry the
// deployment sub-path have it stripped, so canonical URLs never depend on
// where a particular build is hosted. An empty value yields "".
func (s Site) NormalizeURL(v string) string {
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, "http") {
		return v
	}
	if base := s.Base(); base != "" && strings.HasPrefix(v, base+"/") {
		return s.Origin() + v[len(base):]
	}
	if !strings.HasPrefix(v, "/") {
		v = "/" + v
	}
	return s.Origin() + v
}

// Resolve layers p over the site defaults and returns the full head State.
func (s Site) Resolve(p Props) State {
	title := firstNonEmpty(p.Title, s.DefaultTitle)
	description := firstNonEmpty(p.Description, s.DefaultDescription)
	keywords := firstNonEmpty(p.Keywords, s.DefaultKeywords)
	canonical := firstNonEmpty(s.NormalizeURL(p.Canonical), s.Origin())
	image := firstNonEmpty(s.NormalizeURL(p.Image), s.DefaultImage)
	kind := firstNonEmpty(p.Type, "website")

	metas := []Meta{
		{Name: "description", Content: description},
		{Name: "keywords", Content: keywords},
	}
	if p.Robots != "" {
		metas = append(metas, Meta{Name: "robots", Content: p.Robots})
	}
	metas = append(metas,
		Meta{Property: "og:type", Content: kind},
		Meta{Property: "og:title", Content: title},
		Meta{Property: "og:description", Content: description},
		Meta{Property: "og:url", Content: canonical},
		Meta{Property: "og:site_name", Content: s.Name},
		Meta{Property: "og:image", Content: image},
		Meta{Name: "twitter:card", Content: "summary_large_image"},
		Meta{Name: "twitter:title", Content: title},
		Meta{Name: "twitter:description", Content: description},
		Meta{Name: "twitter:image", Content: image},
	)

	return State{
		Title:  title,
		Metas:  metas,
		Links:  []Link{{Rel: "canonical", Href: canonical}},
		JSONLD: p.JSONLD,
	}
}

// Seo resolves p against site and records the result on the render's
// Manager. It writes no markup. The assignment happens inside Render so the
// caller can read it back as soon as the page tree has rendered.
func Seo(site Site, p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, _ io.Writer) error {
		m, ok := FromContext(ctx)
		if !ok {
			return ErrNoManager
		}
		m.Set(site.Resolve(p))
		return nil
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
