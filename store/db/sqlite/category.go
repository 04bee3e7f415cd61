package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/filemap/store"
)

func (d *DB) CreateCategory(ctx context.Context, create *store.Category) (*store.Category, error) {
	fields := []string{"uid", "name", "description", "mutually_exclusive", "color", "icon", "priority"}
	placeholderValues := []any{
		create.UID, create.Name, create.Description, create.MutuallyExclusive,
		create.Color, create.Icon, create.Priority,
	}
	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO category (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(&create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
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
		return nil, fmt.Errorf("failed to query categories: %w", err)
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
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		list = append(list, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteCategory(ctx context.Context, delete *store.DeleteCategory) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM category WHERE uid = `+placeholder(1), delete.UID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}
