// Package scaffold writes a starter configuration and base HTML template
// for a new notes site.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains the starter files. Files use Go text/template syntax
// and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ErrExists is returned when a target file exists and overwriting was not
// requested.
var ErrExists = errors.New("file already exists")

// Data holds the variables passed to every starter template.
type Data struct {
	SiteName string
	SiteURL  string
}

// Write renders every starter template into dir and returns the written
// paths. Existing files are left alone unless force is set.
func Write(dir string, data Data, force bool) ([]string, error) {
	const root = "templates"
	var written []string

	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, rel), ".tmpl")
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		if !force {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s: %w", outPath, ErrExists)
			}
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		written = append(written, outPath)
		return nil
	})
	return written, err
}
