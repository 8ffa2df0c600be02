// Package head carries per-page document metadata (title, meta, link and
// JSON-LD blocks) from a render pass back to the caller that templates the
// final HTML document.
//
// A Manager is created for exactly one render, placed on the render's
// context, filled in by the Seo component while the page tree renders, and
// read back once Render returns.
package head

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// ErrNoManager is returned by Seo when the render context carries no Manager.
var ErrNoManager = errors.New("head: Seo rendered without a Manager on the context")

// Meta is a single <meta> tag. Exactly one of Name or Property is set.
type Meta struct {
	Name     string
	Property string
	Content  string
}

// Link is a single <link> tag.
type Link struct {
	Rel  string
	Href string
}

// State is the head block of one rendered page.
type State struct {
	Title  string
	Metas  []Meta
	Links  []Link
	JSONLD []any
}

// Manager holds the head State produced by one render. The zero value is
// ready to use and reports no State.
type Manager struct {
	mu      sync.Mutex
	current *State
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Set records s as the page's head State, replacing any earlier value.
func (m *Manager) Set(s State) {
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
}

// Current returns the recorded State, or nil when the page never emitted one.
func (m *Manager) Current() *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

type managerKey struct{}

// WithManager returns a context that carries m for the duration of a render.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, m)
}

// FromContext returns the Manager carried by ctx, if any.
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerKey{}).(*Manager)
	return m, ok && m != nil
}

// Markup assembles the head string for s: the title, one tag per meta and
// link, then one structured-data script per JSON-LD object. A nil State
// yields "". A JSON-LD object that cannot be serialized is an error.
func Markup(s *State) (string, error) {
	if s == nil {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("<title>")
	b.WriteString(templ.EscapeString(s.Title))
	b.WriteString("</title>")
	for _, m := range s.Metas {
		b.WriteString("<meta")
		if m.Name != "" {
			writeAttr(&b, "name", m.Name)
		}
		if m.Property != "" {
			writeAttr(&b, "property", m.Property)
		}
		writeAttr(&b, "content", m.Content)
		b.WriteString(">")
	}
	for _, l := range s.Links {
		b.WriteString("<link")
		writeAttr(&b, "rel", l.Rel)
		writeAttr(&b, "href", l.Href)
		b.WriteString(">")
	}
	for i, schema := range s.JSONLD {
		// json.Marshal escapes <, > and & so a value cannot close the script.
		data, err := json.Marshal(schema)
		if err != nil {
			return "", fmt.Errorf("head: json-ld %d: %w", i, err)
		}
		b.WriteString(`<script type="application/ld+json">`)
		b.Write(data)
		b.WriteString("</script>")
	}
	return b.String(), nil
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteByte('"')
}
