package store

import (
	"context"
)

// Category is the object representing a tag category.
type Category struct {
	UID               string
	Name              string
	Description       string
	MutuallyExclusive bool
	Color             string
	Icon              string
	Priority          int
	CreatedTs         int64
}

// FindCategory is the find condition for category.
type FindCategory struct {
	UID  *string
	Name *string
}

// DeleteCategory is the delete request for category.
type DeleteCategory struct {
	UID string
}

// CreateCategory creates a new category.
func (s *Store) CreateCategory(ctx context.Context, create *Category) (*Category, error) {
	category, err := s.driver.CreateCategory(ctx, create)
	if err != nil {
		return nil, err
	}
	s.categoryCache.Set(ctx, category.UID, category)
	return category, nil
}

// ListCategories lists categories with filter.
func (s *Store) ListCategories(ctx context.Context, find *FindCategory) ([]*Category, error) {
	return s.driver.ListCategories(ctx, find)
}

// GetCategory gets a category with filter. Returns nil when not found.
func (s *Store) GetCategory(ctx context.Context, find *FindCategory) (*Category, error) {
	if find.UID != nil {
		if cached, ok := s.categoryCache.Get(ctx, *find.UID); ok {
			return cached.(*Category), nil
		}
	}

	list, err := s.driver.ListCategories(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	category := list[0]
	s.categoryCache.Set(ctx, category.UID, category)
	return category, nil
}

// DeleteCategory deletes a category.
func (s *Store) DeleteCategory(ctx context.Context, delete *DeleteCategory) error {
	if err := s.driver.DeleteCategory(ctx, delete); err != nil {
		return err
	}
	s.categoryCache.Delete(ctx, delete.UID)
	return nil
}
