package store

import (
	"context"
)

// Tag is the object representing a tag.
type Tag struct {
	UID         string
	Name        string
	CategoryUID string
	Description string
	Color       string
	UsageCount  int
	CreatedTs   int64
}

// FindTag is the find condition for tag.
type FindTag struct {
	UID         *string
	Name        *string
	CategoryUID *string
}

// UpdateTag is the update request for tag.
type UpdateTag struct {
	UID         string
	Name        *string
	CategoryUID *string
	Description *string
	Color       *string
	UsageCount  *int
}

// DeleteTag is the delete request for tag.
type DeleteTag struct {
	UID string
}

// CreateTag creates a new tag.
func (s *Store) CreateTag(ctx context.Context, create *Tag) (*Tag, error) {
	tag, err := s.driver.CreateTag(ctx, create)
	if err != nil {
		return nil, err
	}
	s.tagCache.Set(ctx, tag.UID, tag)
	return tag, nil
}

// ListTags lists tags with filter, ordered by creation time.
func (s *Store) ListTags(ctx context.Context, find *FindTag) ([]*Tag, error) {
	return s.driver.ListTags(ctx, find)
}

// GetTag gets a tag with filter. Returns nil when not found.
func (s *Store) GetTag(ctx context.Context, find *FindTag) (*Tag, error) {
	if find.UID != nil {
		if cached, ok := s.tagCache.Get(ctx, *find.UID); ok {
			return cached.(*Tag), nil
		}
	}

	list, err := s.driver.ListTags(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	tag := list[0]
	s.tagCache.Set(ctx, tag.UID, tag)
	return tag, nil
}

// UpdateTag updates a tag.
func (s *Store) UpdateTag(ctx context.Context, update *UpdateTag) error {
	if err := s.driver.UpdateTag(ctx, update); err != nil {
		return err
	}
	s.tagCache.Delete(ctx, update.UID)
	return nil
}

// DeleteTag deletes a tag and its file associations.
func (s *Store) DeleteTag(ctx context.Context, delete *DeleteTag) error {
	if err := s.driver.DeleteTag(ctx, delete); err != nil {
		return err
	}
	s.tagCache.Delete(ctx, delete.UID)
	return nil
}
