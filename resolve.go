package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveTemplate finds the base template. Each candidate is tried in order
// and accepted only when it exists and carries every placeholder; after that
// the *.html files directly inside each scan directory are inspected. It
// returns the accepted path and its contents, or ErrTemplateNotFound naming
// every location tried.
func ResolveTemplate(candidates, scanDirs []string) (string, string, error) {
	var tried []string
	for _, name := range candidates {
		if name == "" {
			continue
		}
		tried = append(tried, name)
		if text, ok := readTemplate(name); ok {
			return name, text, nil
		}
	}
	for _, dir := range scanDirs {
		if dir == "" {
			continue
		}
		tried = append(tried, filepath.Join(dir, "*.html"))
		matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, name := range matches {
			if text, ok := readTemplate(name); ok {
				return name, text, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w (tried %s)", ErrTemplateNotFound, strings.Join(tried, ", "))
}

func readTemplate(name string) (string, bool) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", false
	}
	text := string(data)
	return text, len(missingPlaceholders(text)) == 0
}

// cacheTemplate keeps a pristine copy of the template so a rerun can still
// find it after the first build overwrote <out>/index.html.
func cacheTemplate(cachePath, text string) error {
	if cachePath == "" {
		return nil
	}
	existing, err := os.ReadFile(cachePath)
	if err == nil && string(existing) == text {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return WriteFile(cachePath, []byte(text))
}
