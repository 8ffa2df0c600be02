package notes

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenLedger(filepath.Join(t.TempDir(), "data", "builds.db"))
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenLedger(t *testing.T) {
	l := setupTestLedger(t)
	if l.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestNextVersion(t *testing.T) {
	l := setupTestLedger(t)

	v, err := l.NextVersion()
	if err != nil {
		t.Fatalf("NextVersion failed: %v", err)
	}
	if v != 1 {
		t.Errorf("expected first version 1, got %d", v)
	}

	now := time.Now()
	if err := l.RecordBuild(BuildRecord{ID: "a", Version: v, StartedAt: now, FinishedAt: now}, nil); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}
	v, err = l.NextVersion()
	if err != nil {
		t.Fatalf("NextVersion failed: %v", err)
	}
	if v != 2 {
		t.Errorf("expected version 2, got %d", v)
	}
}

func TestRecordAndListBuild(t *testing.T) {
	l := setupTestLedger(t)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	pages := []PageRecord{
		{Route: "/blog", File: "blog/index.html", Bytes: 20, SHA256: "b"},
		{Route: "/", File: "index.html", Bytes: 10, SHA256: "a"},
	}
	b := BuildRecord{ID: "build-1", Version: 1, StartedAt: started, FinishedAt: started.Add(time.Second), Routes: 2, Remote: true}
	if err := l.RecordBuild(b, pages); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}

	last, err := l.LastBuild()
	if err != nil {
		t.Fatalf("LastBuild failed: %v", err)
	}
	if last.ID != "build-1" || last.Routes != 2 || !last.Remote {
		t.Errorf("unexpected last build: %+v", last)
	}
	if !last.StartedAt.Equal(started) {
		t.Errorf("expected started %v, got %v", started, last.StartedAt)
	}

	got, err := l.ListPages("build-1")
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(got) != 2 || got[0].Route != "/" || got[1].Route != "/blog" {
		t.Errorf("expected pages ordered by route, got %+v", got)
	}
}

func TestLastBuildEmpty(t *testing.T) {
	l := setupTestLedger(t)
	if _, err := l.LastBuild(); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestChangedRoutes(t *testing.T) {
	l := setupTestLedger(t)
	now := time.Now()

	if err := l.RecordBuild(BuildRecord{ID: "one", Version: 1, StartedAt: now, FinishedAt: now}, []PageRecord{
		{Route: "/", File: "index.html", SHA256: "a"},
		{Route: "/blog", File: "blog/index.html", SHA256: "b"},
	}); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}
	if err := l.RecordBuild(BuildRecord{ID: "two", Version: 2, StartedAt: now, FinishedAt: now}, []PageRecord{
		{Route: "/", File: "index.html", SHA256: "a"},
		{Route: "/blog", File: "blog/index.html", SHA256: "changed"},
		{Route: "/about", File: "about/index.html", SHA256: "c"},
	}); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}

	changed, err := l.ChangedRoutes("two")
	if err != nil {
		t.Fatalf("ChangedRoutes failed: %v", err)
	}
	if len(changed) != 2 || changed[0] != "/about" || changed[1] != "/blog" {
		t.Errorf("expected [/about /blog], got %v", changed)
	}
}
