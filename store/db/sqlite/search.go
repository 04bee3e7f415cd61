package sqlite

import (
	"context"
	"fmt"

	"github.com/hrygo/filemap/store"
)

// Full-text search is provided on a best-effort basis (FTS5 if available).

func (d *DB) UpsertFileContent(ctx context.Context, fileUID, content string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO file_content (file_uid, content)
		VALUES (`+placeholders(2)+`)
		ON CONFLICT (file_uid) DO UPDATE SET content = excluded.content`, fileUID, content); err != nil {
		return fmt.Errorf("failed to upsert file content: %w", err)
	}

	if d.ftsAvailable {
		var name string
		if err := tx.QueryRowContext(ctx, `SELECT name FROM file WHERE uid = `+placeholder(1), fileUID).Scan(&name); err != nil {
			return fmt.Errorf("failed to look up file name: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM file_fts WHERE file_uid = `+placeholder(1), fileUID); err != nil {
			return fmt.Errorf("failed to clear file search entry: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO file_fts (file_uid, name, content) VALUES (`+placeholders(3)+`)`, fileUID, name, content); err != nil {
			return fmt.Errorf("failed to insert file search entry: %w", err)
		}
	}

	return tx.Commit()
}

// SearchFiles performs full-text search using SQLite FTS5 if available.
// Falls back to LIKE matching when FTS5 is not compiled in.
func (d *DB) SearchFiles(ctx context.Context, opts *store.SearchFilesOptions) ([]*store.FileSearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	if d.ftsAvailable {
		results, err := d.searchFilesFTS(ctx, opts.Query, limit)
		if err == nil {
			return results, nil
		}
		// FTS5 query syntax errors etc. fall through to LIKE search.
	}
	return d.searchFilesLike(ctx, opts.Query, limit)
}

func (d *DB) searchFilesFTS(ctx context.Context, query string, limit int) ([]*store.FileSearchResult, error) {
	// bm25() is smaller-is-better; negate so callers get a descending score.
	rows, err := d.db.QueryContext(ctx, `
		SELECT file_fts.file_uid, -bm25(file_fts) AS score
		FROM file_fts
		WHERE file_fts MATCH `+placeholder(1)+`
		ORDER BY bm25(file_fts)
		LIMIT `+placeholder(2), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to FTS search: %w", err)
	}
	defer rows.Close()

	type hit struct {
		uid   string
		score float64
	}
	hits := []hit{}
	for rows.Next() {
		var h hit
		if err := rows.Scan(&h.uid, &h.score); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search hits: %w", err)
	}

	results := make([]*store.FileSearchResult, 0, len(hits))
	for _, h := range hits {
		uid := h.uid
		files, err := d.ListFiles(ctx, &store.FindFile{UID: &uid})
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			// Stale search entry for a deleted file.
			continue
		}
		results = append(results, &store.FileSearchResult{File: files[0], Score: h.score})
	}
	return results, nil
}

func (d *DB) searchFilesLike(ctx context.Context, query string, limit int) ([]*store.FileSearchResult, error) {
	pattern := "%" + query + "%"
	rows, err := d.db.QueryContext(ctx, `
		SELECT file.uid
		FROM file
		LEFT JOIN file_content ON file.uid = file_content.file_uid
		WHERE file.name LIKE `+placeholder(1)+` OR file_content.content LIKE `+placeholder(2)+`
		ORDER BY file.created_ts ASC
		LIMIT `+placeholder(3), pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to LIKE search: %w", err)
	}
	defer rows.Close()

	uids := []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		uids = append(uids, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search hits: %w", err)
	}

	results := make([]*store.FileSearchResult, 0, len(uids))
	for _, uid := range uids {
		uid := uid
		files, err := d.ListFiles(ctx, &store.FindFile{UID: &uid})
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		// LIKE matching carries no ranking signal.
		results = append(results, &store.FileSearchResult{File: files[0], Score: 1.0})
	}
	return results, nil
}
