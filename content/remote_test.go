package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRepositoryStats_Success(t *testing.T) {
	body := `{"repositories":[{"name":"demo/repo","url":"https://github.com/demo/repo","stars":3,"extra":{"kept":true}}],"metadata":{"generated_at":"2025-01-02T03:04:05Z"}}`
	srv := serve(t, http.StatusOK, body)

	stats := FetchRepositoryStats(context.Background(), srv.Client(), srv.URL, nil)
	require.NotNil(t, stats)
	require.Len(t, stats.Repositories, 1)
	require.Equal(t, "demo/repo", stats.Repositories[0].Name)
	require.Equal(t, "2025-01-02T03:04:05Z", stats.GeneratedAt())
	require.JSONEq(t, body, string(stats.Raw()))

	repo, ok := stats.Find("demo/repo")
	require.True(t, ok)
	require.Equal(t, 3, repo.Stars)
}

func TestFetchRepositoryStats_FailuresYieldNil(t *testing.T) {
	cases := map[string]*httptest.Server{
		"non-2xx":          serve(t, http.StatusInternalServerError, `{"repositories":[]}`),
		"malformed":        serve(t, http.StatusOK, `{"repositories":[`),
		"top-level null":   serve(t, http.StatusOK, `null`),
		"repositories obj": serve(t, http.StatusOK, `{"repositories":{}}`),
	}
	for name, srv := range cases {
		t.Run(name, func(t *testing.T) {
			require.Nil(t, FetchRepositoryStats(context.Background(), srv.Client(), srv.URL, nil))
		})
	}
}

func TestFetchRepositoryStats_MissingRepositoriesKeepsPayload(t *testing.T) {
	for name, body := range map[string]string{
		"absent": `{"metadata":{"generated_at":"2025-01-02T03:04:05Z"}}`,
		"null":   `{"repositories":null,"metadata":{"generated_at":"2025-01-02T03:04:05Z"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, body)
			stats := FetchRepositoryStats(context.Background(), srv.Client(), srv.URL, nil)
			require.NotNil(t, stats)
			require.Empty(t, stats.Repositories)
			require.Equal(t, "2025-01-02T03:04:05Z", stats.GeneratedAt())
			require.JSONEq(t, body, string(stats.Raw()))
		})
	}
}

func TestFetchRepositoryStats_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	require.Nil(t, FetchRepositoryStats(context.Background(), http.DefaultClient, url, nil))
}

func TestBootstrapContext(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, BootstrapFrom(ctx))

	stats := &RepositoryStats{Repositories: []Repository{{Name: "a"}}}
	require.Same(t, stats, BootstrapFrom(WithBootstrap(ctx, stats)))
	require.Nil(t, BootstrapFrom(WithBootstrap(ctx, nil)))
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"demo/repo":      "demo%2Frepo",
		"plain-name_1.0": "plain-name_1.0",
		"a b&c":          "a%20b%26c",
		"keep!~*'()":     "keep!~*'()",
		"ü":              "%C3%BC",
	}
	for in, want := range tests {
		require.Equal(t, want, EncodeURIComponent(in), in)
	}
}

func TestVideos(t *testing.T) {
	payload, err := ReadVideos("does-not-exist.json")
	require.NoError(t, err)
	require.Empty(t, payload.Videos)

	sorted := SortedVideos([]Video{
		{ID: "a", PublishedAt: "2023-01-01T00:00:00Z"},
		{ID: "b", PublishedAt: "2024-01-01T00:00:00Z"},
	})
	require.Equal(t, "b", sorted[0].ID)
	require.Equal(t, "Deep Dive", VideoCategory(Video{Title: "Deep Dive: Go"}))
	require.Equal(t, "General", VideoCategory(Video{Title: "Hello"}))
}
