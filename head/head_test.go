package head

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSite = Site{
	Name:               "Example",
	URL:                "https://example.com",
	BasePath:           "/",
	DefaultTitle:       "Example | Home",
	DefaultDescription: "Default description",
	DefaultKeywords:    "go, static",
	DefaultImage:       "https://example.com/placeholder.svg",
}

func TestNewManager_StartsEmpty(t *testing.T) {
	m := NewManager()
	require.Nil(t, m.Current())
	out, err := Markup(m.Current())
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestSeo_RoundTripIntoMarkup(t *testing.T) {
	m := NewManager()
	ctx := WithManager(context.Background(), m)

	var buf bytes.Buffer
	err := Seo(testSite, Props{Title: "X", Canonical: "/blog/x"}).Render(ctx, &buf)
	require.NoError(t, err)
	require.Empty(t, buf.String(), "Seo writes no body markup")

	require.NotNil(t, m.Current())
	out, err := Markup(m.Current())
	require.NoError(t, err)
	require.Contains(t, out, "<title>X</title>")
	require.Contains(t, out, `<link rel="canonical" href="https://example.com/blog/x">`)
	require.Contains(t, out, `<meta property="og:url" content="https://example.com/blog/x">`)
}

func TestSeo_WithoutManagerFails(t *testing.T) {
	err := Seo(testSite, Props{}).Render(context.Background(), &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNoManager)
}

func TestResolve_DefaultsApplied(t *testing.T) {
	st := testSite.Resolve(Props{})
	require.Equal(t, "Example | Home", st.Title)
	require.Equal(t, []Link{{Rel: "canonical", Href: "https://example.com"}}, st.Links)

	byKey := map[string]string{}
	for _, m := range st.Metas {
		key := m.Name
		if key == "" {
			key = m.Property
		}
		byKey[key] = m.Content
	}
	require.Equal(t, "Default description", byKey["description"])
	require.Equal(t, "website", byKey["og:type"])
	require.Equal(t, "https://example.com/placeholder.svg", byKey["og:image"])
	require.Equal(t, "summary_large_image", byKey["twitter:card"])
	_, hasRobots := byKey["robots"]
	require.False(t, hasRobots)
}

func TestResolve_EveryMetaHasExactlyOneKey(t *testing.T) {
	st := testSite.Resolve(Props{Robots: "noindex", Type: "article"})
	for _, m := range st.Metas {
		require.True(t, (m.Name == "") != (m.Property == ""), "meta %+v", m)
	}
	require.Equal(t, Meta{Name: "robots", Content: "noindex"}, st.Metas[2])
}

func TestNormalizeURL(t *testing.T) {
	sub := testSite
	sub.BasePath = "/notes/"

	cases := []struct {
		name string
		site Site
		in   string
		want string
	}{
		{"empty", testSite, "", ""},
		{"absolute", sub, "https://cdn.example.net/a.png", "https://cdn.example.net/a.png"},
		{"rooted", testSite, "/blog/x", "https://example.com/blog/x"},
		{"bare", testSite, "blog/x", "https://example.com/blog/x"},
		{"base prefixed", sub, "/notes/img/a.png", "https://example.com/img/a.png"},
		{"base without slash is not stripped", sub, "/notesy/a", "https://example.com/notesy/a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.site.NormalizeURL(tc.in))
		})
	}
}

func TestMarkup_EscapesAndSerializesJSONLD(t *testing.T) {
	st := &State{
		Title: `A "quoted" <title>`,
		Metas: []Meta{{Name: "description", Content: `x" onload="y`}},
		JSONLD: []any{
			map[string]string{"@type": "WebSite", "name": "</script><b>"},
			map[string]string{"@type": "Person"},
		},
	}
	out, err := Markup(st)
	require.NoError(t, err)
	require.Contains(t, out, "<title>A &#34;quoted&#34; &lt;title&gt;</title>")
	require.NotContains(t, out, `onload="y"`)
	require.Equal(t, 2, strings.Count(out, `<script type="application/ld+json">`))
	require.Equal(t, 2, strings.Count(out, "</script>"), "payload must not close the script early")
}

func TestMarkup_Order(t *testing.T) {
	st := testSite.Resolve(Props{Title: "T", JSONLD: []any{map[string]string{"a": "b"}}})
	out, err := Markup(&st)
	require.NoError(t, err)
	title := strings.Index(out, "<title>")
	meta := strings.Index(out, "<meta")
	link := strings.Index(out, "<link")
	script := strings.Index(out, "<script")
	require.True(t, title < meta && meta < link && link < script, out)
}

func TestMarkup_UnserializableJSONLD(t *testing.T) {
	st := &State{Title: "T", JSONLD: []any{map[string]any{"bad": make(chan int)}}}
	out, err := Markup(st)
	require.Error(t, err)
	require.Empty(t, out)
}
