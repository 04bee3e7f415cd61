package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/filemap/store"
)

func (d *DB) CreateFile(ctx context.Context, create *store.File) (*store.File, error) {
	fields := []string{"uid", "name", "path", "managed", "size", "mime_type", "hash", "notes"}
	args := []any{
		create.UID, create.Name, create.Path, create.Managed,
		create.Size, create.MimeType, create.Hash, create.Notes,
	}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}
	if create.UpdatedTs != 0 {
		fields = append(fields, "updated_ts")
		args = append(args, create.UpdatedTs)
	}

	holders := make([]string, 0, len(args))
	for i := range args {
		holders = append(holders, placeholder(i+1))
	}

	stmt := `INSERT INTO file (` + strings.Join(fields, ", ") + `)
		VALUES (` + strings.Join(holders, ", ") + `)
		RETURNING created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to create file")
	}
	return create, nil
}

func (d *DB) ListFiles(ctx context.Context, find *store.FindFile) ([]*store.File, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "file.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "file.name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Path; v != nil {
		where, args = append(where, "file.path = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.PathPrefix; v != nil {
		where, args = append(where, "file.path LIKE "+placeholder(len(args)+1)), append(args, *v+"%")
	}
	if v := find.TagUID; v != nil {
		where, args = append(where, "file.uid IN (SELECT file_uid FROM file_tag WHERE tag_uid = "+placeholder(len(args)+1)+")"), append(args, *v)
	}

	query := `
		SELECT uid, name, path, managed, size, mime_type, hash, notes, created_ts, updated_ts
		FROM file
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY file.created_ts ASC, file.uid ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query files")
	}
	defer rows.Close()

	list := make([]*store.File, 0)
	byUID := make(map[string]*store.File)
	for rows.Next() {
		var file store.File
		if err := rows.Scan(
			&file.UID,
			&file.Name,
			&file.Path,
			&file.Managed,
			&file.Size,
			&file.MimeType,
			&file.Hash,
			&file.Notes,
			&file.CreatedTs,
			&file.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan file")
		}
		list = append(list, &file)
		byUID[file.UID] = &file
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate files")
	}

	if len(list) == 0 {
		return list, nil
	}

	if err := d.attachFileTags(ctx, byUID); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) attachFileTags(ctx context.Context, files map[string]*store.File) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT file_uid, tag_uid
		FROM file_tag
		ORDER BY added_ts ASC, tag_uid ASC`)
	if err != nil {
		return errors.Wrap(err, "failed to query file tags")
	}
	defer rows.Close()

	for rows.Next() {
		var fileUID, tagUID string
		if err := rows.Scan(&fileUID, &tagUID); err != nil {
			return errors.Wrap(err, "failed to scan file tag")
		}
		if file, ok := files[fileUID]; ok {
			file.Tags = append(file.Tags, tagUID)
		}
	}
	return rows.Err()
}

func (d *DB) UpdateFile(ctx context.Context, update *store.UpdateFile) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Path; v != nil {
		set, args = append(set, "path = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Size; v != nil {
		set, args = append(set, "size = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.MimeType; v != nil {
		set, args = append(set, "mime_type = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Hash; v != nil {
		set, args = append(set, "hash = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.UID)
	stmt := `UPDATE file SET ` + strings.Join(set, ", ") + ` WHERE uid = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "failed to update file")
	}
	return nil
}

func (d *DB) DeleteFile(ctx context.Context, delete *store.DeleteFile) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE tag SET usage_count = GREATEST(usage_count - 1, 0)
		WHERE uid IN (SELECT tag_uid FROM file_tag WHERE file_uid = `+placeholder(1)+`)`, delete.UID); err != nil {
		return errors.Wrap(err, "failed to update tag usage counts")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM file_tag WHERE file_uid = `+placeholder(1), delete.UID); err != nil {
		return errors.Wrap(err, "failed to delete file tags")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM file_content WHERE file_uid = `+placeholder(1), delete.UID); err != nil {
		return errors.Wrap(err, "failed to delete file content")
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM file WHERE uid = `+placeholder(1), delete.UID)
	if err != nil {
		return errors.Wrap(err, "failed to delete file")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.New("file not found")
	}

	return tx.Commit()
}

func (d *DB) AddFileTag(ctx context.Context, fileUID, tagUID string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO file_tag (file_uid, tag_uid)
		VALUES (`+placeholder(1)+`, `+placeholder(2)+`)
		ON CONFLICT (file_uid, tag_uid) DO NOTHING`, fileUID, tagUID)
	if err != nil {
		return errors.Wrap(err, "failed to add file tag")
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE tag SET usage_count = usage_count + 1 WHERE uid = `+placeholder(1), tagUID); err != nil {
			return errors.Wrap(err, "failed to update tag usage count")
		}
	}

	return tx.Commit()
}

func (d *DB) RemoveFileTag(ctx context.Context, fileUID, tagUID string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM file_tag WHERE file_uid = `+placeholder(1)+` AND tag_uid = `+placeholder(2), fileUID, tagUID)
	if err != nil {
		return errors.Wrap(err, "failed to remove file tag")
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE tag SET usage_count = GREATEST(usage_count - 1, 0) WHERE uid = `+placeholder(1), tagUID); err != nil {
			return errors.Wrap(err, "failed to update tag usage count")
		}
	}

	return tx.Commit()
}
