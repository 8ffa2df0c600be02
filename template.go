package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
)

// Placeholders the base template must carry, once each.
const (
	HeadPlaceholder  = "<!--app-head-->"
	StatePlaceholder = "<!--app-state-->"
	HTMLPlaceholder  = "<!--app-html-->"
)

var placeholders = []string{HeadPlaceholder, StatePlaceholder, HTMLPlaceholder}

// BootstrapGlobal is the window property the hydration payload is assigned to.
const BootstrapGlobal = "window.__REPOSITORY_STATS__"

// Template is a parsed base template, shared read-only by every route.
type Template struct {
	text string
}

// ParseTemplate checks that text carries every placeholder.
func ParseTemplate(text string) (*Template, error) {
	if missing := missingPlaceholders(text); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingPlaceholder, strings.Join(missing, ", "))
	}
	return &Template{text: text}, nil
}

func missingPlaceholders(text string) []string {
	var missing []string
	for _, p := range placeholders {
		if !strings.Contains(text, p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Text returns the unmodified template.
func (t *Template) Text() string { return t.text }

// Execute substitutes the page head, the bootstrap script and the page body,
// each into the first occurrence of its placeholder.
func (t *Template) Execute(p Page, script string) string {
	out := strings.Replace(t.text, HeadPlaceholder, p.Head, 1)
	out = strings.Replace(out, StatePlaceholder, script, 1)
	return strings.Replace(out, HTMLPlaceholder, p.HTML, 1)
}

// BootstrapScript returns the script that hands the statistics payload to
// the client, or "" when stats is nil. The payload is re-emitted from the
// bytes it was fetched as, with <, > and & escaped so no value can end the
// script element early.
func BootstrapScript(stats *content.RepositoryStats) (string, error) {
	if stats == nil {
		return "", nil
	}
	raw := stats.Raw()
	if len(raw) == 0 {
		var err error
		if raw, err = json.Marshal(stats); err != nil {
			return "", fmt.Errorf("encode bootstrap payload: %w", err)
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", fmt.Errorf("encode bootstrap payload: %w", err)
	}
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, compact.Bytes())
	return "<script>" + BootstrapGlobal + " = " + escaped.String() + ";</script>", nil
}
