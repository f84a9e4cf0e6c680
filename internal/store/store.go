// Package store persists catalog snapshots in SQLite so a server can
// start without reaching the original data files.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/iconicfonts/iconic/internal/catalog"
)

// ErrNoSnapshot is returned when the database holds no snapshot yet.
var ErrNoSnapshot = errors.New("no catalog snapshot imported")

// DB wraps a sql.DB with snapshot helpers.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL DEFAULT '',
    glyph_count INTEGER NOT NULL DEFAULT 0,
    font_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);

CREATE TABLE IF NOT EXISTS glyphs (
    snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    unicode TEXT NOT NULL DEFAULT '',
    character TEXT NOT NULL DEFAULT '',
    pack TEXT NOT NULL,
    style TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(snapshot_id, position)
);

CREATE INDEX IF NOT EXISTS idx_glyphs_pack ON glyphs(snapshot_id, pack);

CREATE TABLE IF NOT EXISTS fonts (
    snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    font_file TEXT NOT NULL DEFAULT '',
    version TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(snapshot_id, position)
);
`

// Snapshot describes one imported catalog.
type Snapshot struct {
	ID         string
	Source     string
	GlyphCount int
	FontCount  int
	CreatedAt  time.Time
}

// Import writes c as a new snapshot in a single transaction.
func (d *DB) Import(ctx context.Context, c *catalog.Catalog, source string) (Snapshot, error) {
	snap := Snapshot{
		ID:         uuid.NewString(),
		Source:     source,
		GlyphCount: len(c.Glyphs),
		FontCount:  len(c.Fonts),
		CreatedAt:  time.Now().UTC(),
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, glyph_count, font_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.GlyphCount, snap.FontCount, snap.CreatedAt,
	); err != nil {
		return Snapshot{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	glyphStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO glyphs (snapshot_id, position, name, unicode, character, pack, style, tags) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing glyph insert: %w", err)
	}
	defer glyphStmt.Close()
	for i, g := range c.Glyphs {
		if _, err := glyphStmt.ExecContext(ctx, snap.ID, i, g.Name, g.Unicode, g.Character, g.Pack, g.Style, g.Tags); err != nil {
			return Snapshot{}, fmt.Errorf("inserting glyph %s: %w", g.ID(), err)
		}
	}

	fontStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fonts (snapshot_id, position, name, font_file, version) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing font insert: %w", err)
	}
	defer fontStmt.Close()
	for i, f := range c.Fonts {
		if _, err := fontStmt.ExecContext(ctx, snap.ID, i, f.Name, f.FontFile, f.Version); err != nil {
			return Snapshot{}, fmt.Errorf("inserting font %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("committing import: %w", err)
	}
	return snap, nil
}

// Latest returns the most recently imported snapshot.
func (d *DB) Latest(ctx context.Context) (Snapshot, error) {
	return latest(ctx, d.DB)
}

// querier is the read surface shared by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func latest(ctx context.Context, q querier) (Snapshot, error) {
	var s Snapshot
	err := q.QueryRowContext(ctx,
		`SELECT id, source, glyph_count, font_count, created_at FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&s.ID, &s.Source, &s.GlyphCount, &s.FontCount, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("querying latest snapshot: %w", err)
	}
	return s, nil
}

// Prune deletes all but the newest keep snapshots and returns how many
// were removed.
func (d *DB) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := d.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return res.RowsAffected()
}
