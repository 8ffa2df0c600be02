package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	written, err := Write(dir, Data{SiteName: "Field Notes", SiteURL: "https://example.com"}, false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "notes.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(cfg), `name: "Field Notes"`) {
		t.Errorf("config missing site name:\n%s", cfg)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	for _, p := range []string{"<!--app-head-->", "<!--app-html-->", "<!--app-state-->"} {
		if !strings.Contains(string(index), p) {
			t.Errorf("template missing %s", p)
		}
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, Data{SiteName: "A"}, false); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if _, err := Write(dir, Data{SiteName: "B"}, false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := Write(dir, Data{SiteName: "B"}, true); err != nil {
		t.Fatalf("forced Write: %v", err)
	}
}
