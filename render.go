package notes

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
	"github.com/markhazleton/mark-hazleton-s-notes/views"
)

// Page is the output of one render: the body markup and the head markup
// collected while it rendered. Head is "" when the page never set it.
type Page struct {
	Route string
	HTML  string
	Head  string
}

// PageSource maps a location to the component rendered for it.
// *views.Router is the production source.
type PageSource interface {
	Page(location string) templ.Component
}

// Renderer renders a route through the page tree. It performs no I/O and is
// safe for concurrent use; Bootstrap is shared read-only by every render.
type Renderer struct {
	Site      head.Site
	Router    PageSource
	Bootstrap *content.RepositoryStats
}

// Location returns the full location for route under the deployment
// sub-path.
func (r *Renderer) Location(route string) string {
	base := r.Site.Base()
	if base == "" {
		return route
	}
	if route == "/" {
		return base + "/"
	}
	return base + route
}

// Render renders route with a fresh head.Manager and returns the body and
// assembled head.
func (r *Renderer) Render(ctx context.Context, route string) (Page, error) {
	m := head.NewManager()
	ctx = head.WithManager(ctx, m)
	ctx = content.WithBootstrap(ctx, r.Bootstrap)

	page := views.Layout(r.Site, r.Router.Page(r.Location(route)))
	var buf bytes.Buffer
	if err := page.Render(ctx, &buf); err != nil {
		return Page{}, fmt.Errorf("render %s: %w", route, err)
	}
	markup, err := head.Markup(m.Current())
	if err != nil {
		return Page{}, fmt.Errorf("render %s: %w", route, err)
	}
	return Page{
		Route: route,
		HTML:  buf.String(),
		Head:  markup,
	}, nil
}
