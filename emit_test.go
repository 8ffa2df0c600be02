package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	out := filepath.Join("dist")
	tests := map[string]string{
		"/":                             filepath.Join("dist", "index.html"),
		"/blog":                         filepath.Join("dist", "blog", "index.html"),
		"/blog/":                        filepath.Join("dist", "blog", "index.html"),
		"/blog/post-a":                  filepath.Join("dist", "blog", "post-a", "index.html"),
		"/now/repositories/demo%2Frepo": filepath.Join("dist", "now", "repositories", "demo%2Frepo", "index.html"),
	}
	for route, want := range tests {
		got, err := OutputPath(out, route)
		require.NoError(t, err, route)
		require.Equal(t, want, got, route)
	}
}

func TestOutputPath_RejectsEscapes(t *testing.T) {
	for _, route := range []string{"/../etc", "/blog/../../x", "blog"} {
		_, err := OutputPath("dist", route)
		require.ErrorIs(t, err, ErrInvalidRoute, route)
	}
}

func TestWriteFile_CreatesParentsAndOverwrites(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a", "b", "index.html")
	require.NoError(t, WriteFile(name, []byte("one")))
	require.NoError(t, WriteFile(name, []byte("two")))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))
}
