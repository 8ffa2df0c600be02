package notes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
)

func TestEnumerateRoutes_EndToEndScenario(t *testing.T) {
	routes := EnumerateRoutes(RouteSources{
		Static:       []string{"/", "/blog"},
		Articles:     []content.ArticleEntry{{Slug: "articles/post-a.html", ContentFile: "post-a.md"}},
		Repositories: []content.Repository{{Name: "demo/repo"}},
	})
	require.Equal(t, []string{"/", "/blog", "/blog/post-a", "/now/repositories/demo%2Frepo"}, routes)
}

func TestEnumerateRoutes_DedupFirstWins(t *testing.T) {
	src := RouteSources{
		Static: []string{"/", "/blog", "/projects/tool", "/blog"},
		Articles: []content.ArticleEntry{
			{ContentFile: "a.md"},
			{ContentFile: "A.MD"},
			{ContentFile: "b.md"},
		},
		Projects:         []content.ProjectSource{{Slug: "tool"}, {Slug: ""}, {Slug: "other"}},
		Repositories:     []content.Repository{{Name: "plain"}, {Name: ""}, {Name: "plain"}},
		RepositoryPrefix: "github/repositories",
	}
	first := EnumerateRoutes(src)
	require.Equal(t, []string{
		"/", "/blog", "/projects/tool",
		"/blog/a", "/blog/A", "/blog/b",
		"/projects/other",
		"/github/repositories/plain",
	}, first)
	require.Equal(t, first, EnumerateRoutes(src), "identical input yields identical output")
}

func TestEnumerateRoutes_LegacyIndexAndDraftsExcluded(t *testing.T) {
	routes := EnumerateRoutes(RouteSources{
		Articles: []content.ArticleEntry{
			{Slug: "articles.html", ContentFile: "articles.md"},
			{Slug: "articles/draft.html", ContentFile: "_draft.md"},
			{},
			{Slug: "articles/kept.html", ContentFile: "kept.md"},
		},
	})
	require.Equal(t, []string{"/blog/kept"}, routes)
}

func TestEnumerateRoutes_LegacySlug(t *testing.T) {
	routes := EnumerateRoutes(RouteSources{
		Articles: []content.ArticleEntry{
			{Slug: "articles/legacy-post.html"},
			{Slug: "articles/foo.html", ContentFile: "foo-bar.md"},
		},
	})
	require.Equal(t, []string{"/blog/legacy-post", "/blog/foo-bar"}, routes)
}

func TestEnumerateRoutes_NoRemote(t *testing.T) {
	routes := EnumerateRoutes(RouteSources{Static: []string{"/"}, Repositories: nil})
	require.Equal(t, []string{"/"}, routes)
}

func TestEnumerateRoutes_StaticRoutesCleaned(t *testing.T) {
	routes := EnumerateRoutes(RouteSources{
		Static: []string{"/", "/blog", "/blog/", "blog", "/about/./", " ", "//now"},
	})
	require.Equal(t, []string{"/", "/blog", "/about", "/now"}, routes)
}
