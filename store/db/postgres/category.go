package postgres

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/filemap/store"
)

func (d *DB) CreateCategory(ctx context.Context, create *store.Category) (*store.Category, error) {
	fields := []string{"uid", "name", "description", "mutually_exclusive", "color", "icon", "priority"}
	args := []any{
		create.UID, create.Name, create.Description, create.MutuallyExclusive,
		create.Color, create.Icon, create.Priority,
	}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}

	holders := make([]string, 0, len(args))
	for i := range args {
		holders = append(holders, placeholder(i+1))
	}

	stmt := `INSERT INTO category (` + strings.Join(fields, ", ") + `)
		VALUES (` + strings.Join(holders, ", ") + `)
		RETURNING created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}
	return create, nil
}

func (d *DB) ListCategories(ctx context.Context, find *store.FindCategory) ([]*store.Category, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "category.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "category.name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT uid, name, description, mutually_exclusive, color, icon, priority, created_ts
		FROM category
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY category.priority ASC, category.created_ts ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query categories")
	}
	defer rows.Close()

	list := make([]*store.Category, 0)
	for rows.Next() {
		var category store.Category
		if err := rows.Scan(
			&category.UID,
			&category.Name,
			&category.Description,
			&category.MutuallyExclusive,
			&category.Color,
			&category.Icon,
			&category.Priority,
			&category.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan category")
		}
		list = append(list, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate categories")
	}
	return list, nil
}

func (d *DB) DeleteCategory(ctx context.Context, delete *store.DeleteCategory) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM category WHERE uid = `+placeholder(1), delete.UID)
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.New("category not found")
	}
	return nil
}
