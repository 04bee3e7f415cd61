package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hrygo/filemap/store"
)

func (d *DB) UpsertFileContent(ctx context.Context, fileUID, content string) error {
	if _, err := d.db.ExecContext(ctx, `
		INSERT INTO file_content (file_uid, content)
		VALUES (`+placeholder(1)+`, `+placeholder(2)+`)
		ON CONFLICT (file_uid) DO UPDATE SET content = EXCLUDED.content`, fileUID, content); err != nil {
		return errors.Wrap(err, "failed to upsert file content")
	}
	return nil
}

// SearchFiles performs full-text search using PostgreSQL's ts_vector.
// Uses the 'simple' text search configuration for better multilingual support.
func (d *DB) SearchFiles(ctx context.Context, opts *store.SearchFilesOptions) ([]*store.FileSearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT
			f.uid,
			ts_rank(
				to_tsvector('simple', f.name || ' ' || COALESCE(c.content, '')),
				plainto_tsquery('simple', ` + placeholder(1) + `)
			) AS score
		FROM file f
		LEFT JOIN file_content c ON f.uid = c.file_uid
		WHERE to_tsvector('simple', f.name || ' ' || COALESCE(c.content, ''))
			@@ plainto_tsquery('simple', ` + placeholder(2) + `)
		ORDER BY score DESC, f.created_ts ASC
		LIMIT ` + placeholder(3)

	rows, err := d.db.QueryContext(ctx, query, opts.Query, opts.Query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search files")
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
			return nil, errors.Wrap(err, "failed to scan search hit")
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate search hits")
	}

	results := make([]*store.FileSearchResult, 0, len(hits))
	for _, h := range hits {
		uid := h.uid
		files, err := d.ListFiles(ctx, &store.FindFile{UID: &uid})
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		results = append(results, &store.FileSearchResult{File: files[0], Score: h.score})
	}
	return results, nil
}
