package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildSlug(t *testing.T) {
	tests := []struct {
		name  string
		entry ArticleEntry
		want  string
	}{
		{"content file", ArticleEntry{ContentFile: "foo-bar.md", Slug: "articles/ignored.html"}, "foo-bar"},
		{"content file upper ext", ArticleEntry{ContentFile: "Foo.MD"}, "Foo"},
		{"legacy slug", ArticleEntry{Slug: "articles/legacy-post.html"}, "legacy-post"},
		{"legacy slug without prefix", ArticleEntry{Slug: "plain.HTML"}, "plain"},
		{"legacy slug untouched", ArticleEntry{Slug: "already-clean"}, "already-clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, BuildSlug(tt.entry))
		})
	}
}

func TestIsPublishable(t *testing.T) {
	require.True(t, IsPublishable(ArticleEntry{ContentFile: "post.md"}))
	require.False(t, IsPublishable(ArticleEntry{ContentFile: LegacyIndexFile}))
	require.False(t, IsPublishable(ArticleEntry{ContentFile: "_TEMPLATE.md"}))
	require.True(t, IsPublishable(ArticleEntry{Slug: "articles/legacy.html"}))
	require.False(t, IsPublishable(ArticleEntry{}))
}

func TestToPost(t *testing.T) {
	e := ArticleEntry{
		Section:           "Architecture",
		Name:              "Event Driven",
		ContentFile:       "event-driven.md",
		Description:       "fallback",
		Summary:           "**Bold** summary with [link](https://x)",
		PublishedDate:     "2024-03-05T10:00:00Z",
		EstimatedReadTime: 7.6,
		ImgSrc:            strPtr("/img/a.png"),
	}
	p := ToPost(e, "/notes/")
	require.Equal(t, "event-driven", p.Slug)
	require.Equal(t, "Bold summary with link", p.Excerpt)
	require.Equal(t, "2024-03-05", p.Date)
	require.Equal(t, "8 min", p.ReadingTime)
	require.Equal(t, []string{"Architecture"}, p.Tags)
	require.Equal(t, "/notes/img/a.png", p.Image)
}

func TestToPost_Fallbacks(t *testing.T) {
	p := ToPost(ArticleEntry{ContentFile: "x.md", Description: " desc ", LastMod: "garbage"}, "/")
	require.Equal(t, "desc", p.Excerpt)
	require.Equal(t, "1970-01-01", p.Date)
	require.Equal(t, "5 min", p.ReadingTime)
	require.Empty(t, p.Image)

	p = ToPost(ArticleEntry{ContentFile: "y.md", EstimatedReadTime: 0.2, LastMod: "2023-01-02"}, "/")
	require.Equal(t, "1 min", p.ReadingTime)
	require.Equal(t, "2023-01-02", p.Date)
}

func TestPosts_FiltersAndSortsNewestFirst(t *testing.T) {
	entries := []ArticleEntry{
		{ContentFile: "old.md", PublishedDate: "2020-01-01"},
		{ContentFile: LegacyIndexFile, PublishedDate: "2030-01-01"},
		{ContentFile: "new.md", PublishedDate: "2024-01-01"},
		{Slug: "articles/legacy.html", PublishedDate: "2025-01-01"},
	}
	posts := Posts(entries, "/")
	require.Len(t, posts, 3)
	require.Equal(t, "legacy", posts[0].Slug)
	require.Empty(t, posts[0].ContentFile)
	require.Equal(t, "new", posts[1].Slug)
	require.Equal(t, "old", posts[2].Slug)
}

func TestReadArticlesAndBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"Section":"Go","name":"A","contentFile":"a.md","publishedDate":"2024-01-01","estimatedReadTime":3}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))

	entries, err := ReadArticles(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	body, err := ReadBody(dir, ToPost(entries[0], "/"))
	require.NoError(t, err)
	require.Equal(t, "# A\n", body)
}

func TestReadArticles_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	_, err := ReadArticles(path)
	require.Error(t, err)
}

func TestWithBasePath(t *testing.T) {
	require.Equal(t, "/img/a.png", WithBasePath("/", "/img/a.png"))
	require.Equal(t, "/notes/img/a.png", WithBasePath("/notes", "img/a.png"))
	require.Equal(t, "https://x/a.png", WithBasePath("/notes/", "https://x/a.png"))
	require.Equal(t, "", WithBasePath("/notes/", ""))
}

func TestTags(t *testing.T) {
	posts := []Post{{Tags: []string{"Go"}}, {Tags: []string{"Azure"}}, {Tags: []string{"Go"}}}
	require.Equal(t, []string{"Azure", "Go"}, Tags(posts))
}
