package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Category model related methods.
	CreateCategory(ctx context.Context, create *Category) (*Category, error)
	ListCategories(ctx context.Context, find *FindCategory) ([]*Category, error)
	DeleteCategory(ctx context.Context, delete *DeleteCategory) error

	// Tag model related methods.
	CreateTag(ctx context.Context, create *Tag) (*Tag, error)
	ListTags(ctx context.Context, find *FindTag) ([]*Tag, error)
	UpdateTag(ctx context.Context, update *UpdateTag) error
	DeleteTag(ctx context.Context, delete *DeleteTag) error

	// File model related methods.
	CreateFile(ctx context.Context, create *File) (*File, error)
	ListFiles(ctx context.Context, find *FindFile) ([]*File, error)
	UpdateFile(ctx context.Context, update *UpdateFile) error
	DeleteFile(ctx context.Context, delete *DeleteFile) error

	// File-tag relation related methods. Both maintain the tag's
	// usage_count in the same transaction.
	AddFileTag(ctx context.Context, fileUID, tagUID string) error
	RemoveFileTag(ctx context.Context, fileUID, tagUID string) error

	// Full-text search related methods.
	UpsertFileContent(ctx context.Context, fileUID, content string) error
	SearchFiles(ctx context.Context, opts *SearchFilesOptions) ([]*FileSearchResult, error)
}
