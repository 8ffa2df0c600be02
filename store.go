package notes

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// BuildRecord is one row of the builds table.
type BuildRecord struct {
	ID         string
	Version    int
	StartedAt  time.Time
	FinishedAt time.Time
	Routes     int
	Remote     bool
}

// PageRecord is one emitted page of a build.
type PageRecord struct {
	Route  string
	File   string
	Bytes  int
	SHA256 string
}

// Ledger wraps a SQLite database recording every build and the pages it
// wrote, so successive builds can be compared.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) the SQLite database at path, ensures the
// directory exists, and runs schema migrations.
func OpenLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL with a busy timeout so a preview rebuild never trips over a
	// reader; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	l := &Ledger{db: db}
	if err := l.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) ensureSchema() error {
	_, err := l.db.Exec(`
CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    routes INTEGER NOT NULL,
    remote INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS build_pages (
    build_id TEXT NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
    route TEXT NOT NULL,
    file TEXT NOT NULL,
    bytes INTEGER NOT NULL,
    sha256 TEXT NOT NULL,
    PRIMARY KEY (build_id, route)
);
CREATE INDEX IF NOT EXISTS idx_builds_version ON builds(version);
`)
	return err
}

// NextVersion returns one more than the highest recorded build version.
func (l *Ledger) NextVersion() (int, error) {
	var v sql.NullInt64
	if err := l.db.QueryRow(`SELECT MAX(version) FROM builds`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64) + 1, nil
}

// RecordBuild stores a build and its pages in one transaction.
func (l *Ledger) RecordBuild(b BuildRecord, pages []PageRecord) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	remote := 0
	if b.Remote {
		remote = 1
	}
	if _, err := tx.Exec(`INSERT INTO builds (id, version, started_at, finished_at, routes, remote) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Version, b.StartedAt.UTC().Format(time.RFC3339Nano), b.FinishedAt.UTC().Format(time.RFC3339Nano), b.Routes, remote); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO build_pages (build_id, route, file, bytes, sha256) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range pages {
		if _, err := stmt.Exec(b.ID, p.Route, p.File, p.Bytes, p.SHA256); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LastBuild returns the most recent build, or sql.ErrNoRows when none exist.
func (l *Ledger) LastBuild() (BuildRecord, error) {
	var (
		b                 BuildRecord
		started, finished string
		remote            int
	)
	err := l.db.QueryRow(`SELECT id, version, started_at, finished_at, routes, remote FROM builds ORDER BY version DESC LIMIT 1`).
		Scan(&b.ID, &b.Version, &started, &finished, &b.Routes, &remote)
	if err != nil {
		return BuildRecord{}, err
	}
	b.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	b.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	b.Remote = remote == 1
	return b, nil
}

// ListPages returns the pages of a build ordered by route.
func (l *Ledger) ListPages(buildID string) ([]PageRecord, error) {
	rows, err := l.db.Query(`SELECT route, file, bytes, sha256 FROM build_pages WHERE build_id = ? ORDER BY route`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []PageRecord
	for rows.Next() {
		var p PageRecord
		if err := rows.Scan(&p.Route, &p.File, &p.Bytes, &p.SHA256); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ChangedRoutes returns the routes of buildID whose content differs from, or
// is absent in, the build before it.
func (l *Ledger) ChangedRoutes(buildID string) ([]string, error) {
	rows, err := l.db.Query(`
SELECT cur.route FROM build_pages cur
JOIN builds b ON b.id = cur.build_id
LEFT JOIN builds prev ON prev.version = (SELECT MAX(version) FROM builds WHERE version < b.version)
LEFT JOIN build_pages old ON old.build_id = prev.id AND old.route = cur.route
WHERE cur.build_id = ? AND (old.sha256 IS NULL OR old.sha256 != cur.sha256)
ORDER BY cur.route`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// IsNotFound reports whether err means the ledger has no matching row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
