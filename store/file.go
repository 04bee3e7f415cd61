package store

import (
	"context"
)

// File is the object representing a managed or indexed file.
type File struct {
	UID       string
	Name      string
	Path      string
	Managed   bool
	Size      int64
	MimeType  string
	Hash      string
	Notes     string
	CreatedTs int64
	UpdatedTs int64

	// Tags holds the tag UIDs attached to this file, in the order
	// they were added.
	Tags []string
}

// FindFile is the find condition for file.
type FindFile struct {
	UID        *string
	Name       *string
	Path       *string
	PathPrefix *string
	TagUID     *string

	// Pagination
	Limit  *int
	Offset *int
}

// UpdateFile is the update request for file.
type UpdateFile struct {
	UID       string
	Name      *string
	Path      *string
	Size      *int64
	MimeType  *string
	Hash      *string
	Notes     *string
	UpdatedTs *int64
}

// DeleteFile is the delete request for file.
type DeleteFile struct {
	UID string
}

// CreateFile creates a new file record.
func (s *Store) CreateFile(ctx context.Context, create *File) (*File, error) {
	return s.driver.CreateFile(ctx, create)
}

// ListFiles lists files with filter, ordered by creation time.
// The Tags field of every returned file is populated.
func (s *Store) ListFiles(ctx context.Context, find *FindFile) ([]*File, error) {
	return s.driver.ListFiles(ctx, find)
}

// GetFile gets a file with filter. Returns nil when not found.
func (s *Store) GetFile(ctx context.Context, find *FindFile) (*File, error) {
	list, err := s.driver.ListFiles(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateFile updates a file record.
func (s *Store) UpdateFile(ctx context.Context, update *UpdateFile) error {
	return s.driver.UpdateFile(ctx, update)
}

// DeleteFile deletes a file record and its tag associations.
func (s *Store) DeleteFile(ctx context.Context, delete *DeleteFile) error {
	return s.driver.DeleteFile(ctx, delete)
}

// AddFileTag attaches a tag to a file and bumps the tag's usage count.
// Attaching an already-attached tag is a no-op.
func (s *Store) AddFileTag(ctx context.Context, fileUID, tagUID string) error {
	if err := s.driver.AddFileTag(ctx, fileUID, tagUID); err != nil {
		return err
	}
	s.tagCache.Delete(ctx, tagUID)
	return nil
}

// RemoveFileTag detaches a tag from a file and decrements the tag's usage count.
func (s *Store) RemoveFileTag(ctx context.Context, fileUID, tagUID string) error {
	if err := s.driver.RemoveFileTag(ctx, fileUID, tagUID); err != nil {
		return err
	}
	s.tagCache.Delete(ctx, tagUID)
	return nil
}
