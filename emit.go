package notes

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// OutputPath maps a route to the file it is written to: "/" becomes
// <outDir>/index.html and any other route R becomes <outDir>/R/index.html.
func OutputPath(outDir, route string) (string, error) {
	if !strings.HasPrefix(route, "/") {
		return "", fmt.Errorf("%w: %q does not start with /", ErrInvalidRoute, route)
	}
	for _, seg := range strings.Split(route, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q escapes the output directory", ErrInvalidRoute, route)
		}
	}
	clean := path.Clean(route)
	if clean == "/" {
		return filepath.Join(outDir, "index.html"), nil
	}
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")), "index.html"), nil
}

// WriteFile creates the parent directories of name and writes data,
// replacing any existing file.
func WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
