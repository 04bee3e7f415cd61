package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"
	"github.com/pkg/errors"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/store"
)

// SQLite is the default backend for single-user workspaces. Full-text
// search runs on FTS5 when the build provides it and degrades to LIKE
// matching otherwise.

type DB struct {
	db      *sql.DB
	profile *profile.Profile

	// ftsAvailable is set at startup after probing for FTS5.
	ftsAvailable bool
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	driver := &DB{
		db:      db,
		profile: profile,
	}
	driver.initFTS()

	return driver, nil
}

// initFTS creates the FTS5 search table on a best-effort basis.
func (d *DB) initFTS() {
	_, err := d.db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS file_fts USING fts5(file_uid UNINDEXED, name, content)`)
	if err != nil {
		slog.Warn("FTS5 unavailable, falling back to LIKE search", slog.String("error", err.Error()))
		d.ftsAvailable = false
		return
	}
	d.ftsAvailable = true
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) IsInitialized(ctx context.Context) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'file')").Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check if database is initialized")
	}
	return exists, nil
}
