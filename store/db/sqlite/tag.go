package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/filemap/store"
)

func (d *DB) CreateTag(ctx context.Context, create *store.Tag) (*store.Tag, error) {
	fields := []string{"uid", "name", "category_uid", "description", "color", "usage_count"}
	placeholderValues := []any{
		create.UID, create.Name, create.CategoryUID, create.Description,
		create.Color, create.UsageCount,
	}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO tag (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(&create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return create, nil
}

func (d *DB) ListTags(ctx context.Context, find *store.FindTag) ([]*store.Tag, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "tag.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "tag.name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CategoryUID; v != nil {
		where, args = append(where, "tag.category_uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT uid, name, category_uid, description, color, usage_count, created_ts
		FROM tag
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY tag.created_ts ASC, tag.uid ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Tag, 0)
	for rows.Next() {
		var tag store.Tag
		if err := rows.Scan(
			&tag.UID,
			&tag.Name,
			&tag.CategoryUID,
			&tag.Description,
			&tag.Color,
			&tag.UsageCount,
			&tag.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		list = append(list, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateTag(ctx context.Context, update *store.UpdateTag) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.CategoryUID; v != nil {
		set, args = append(set, "category_uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Color; v != nil {
		set, args = append(set, "color = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UsageCount; v != nil {
		set, args = append(set, "usage_count = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.UID)
	stmt := `UPDATE tag SET ` + strings.Join(set, ", ") + ` WHERE uid = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return nil
}

func (d *DB) DeleteTag(ctx context.Context, delete *store.DeleteTag) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM file_tag WHERE tag_uid = `+placeholder(1), delete.UID); err != nil {
		return fmt.Errorf("failed to delete tag associations: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tag WHERE uid = `+placeholder(1), delete.UID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("tag not found")
	}

	return tx.Commit()
}
