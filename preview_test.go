package notes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPreview(t *testing.T, basePath string) *PreviewServer {
	t.Helper()
	out := t.TempDir()
	files := map[string]string{
		"index.html":                              "<p>home</p>",
		"blog/index.html":                         "<p>blog</p>",
		"now/repositories/demo%2Frepo/index.html": "<p>repo</p>",
		"assets/app-1234.js":                      "console.log(1)",
		"404.html":                                "<p>missing</p>",
	}
	for name, body := range files {
		require.NoError(t, WriteFile(filepath.Join(out, filepath.FromSlash(name)), []byte(body)))
	}
	return NewPreviewServer(SiteConfig{OutDir: out, BasePath: basePath}, quietLogger())
}

func get(t *testing.T, p *PreviewServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	p.Echo.ServeHTTP(rec, req)
	return rec
}

func TestPreview_ServesRoutes(t *testing.T) {
	p := newTestPreview(t, "/")
	tests := map[string]string{
		"/":                             "<p>home</p>",
		"/blog":                         "<p>blog</p>",
		"/blog/":                        "<p>blog</p>",
		"/now/repositories/demo%2Frepo": "<p>repo</p>",
	}
	for target, want := range tests {
		rec := get(t, p, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.Equal(t, want, rec.Body.String(), target)
		require.Equal(t, "public, max-age=0, must-revalidate", rec.Header().Get("Cache-Control"), target)
	}
}

func TestPreview_AssetsAreImmutable(t *testing.T) {
	rec := get(t, newTestPreview(t, "/"), "/assets/app-1234.js")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestPreview_NotFoundPage(t *testing.T) {
	rec := get(t, newTestPreview(t, "/"), "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "<p>missing</p>", rec.Body.String())
}

func TestPreview_BasePath(t *testing.T) {
	p := newTestPreview(t, "/notes/")
	rec := get(t, p, "/notes/blog")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<p>blog</p>", rec.Body.String())

	rec = get(t, p, "/notes/")
	require.Equal(t, "<p>home</p>", rec.Body.String())
}
