package store

import (
	"context"
)

// SearchFilesOptions contains options for full-text file search.
type SearchFilesOptions struct {
	Query string
	Limit int
}

// FileSearchResult is a file with its full-text relevance score.
type FileSearchResult struct {
	File  *File
	Score float64
}

// UpsertFileContent stores the extracted text content of a file for
// full-text search.
func (s *Store) UpsertFileContent(ctx context.Context, fileUID, content string) error {
	return s.driver.UpsertFileContent(ctx, fileUID, content)
}

// SearchFiles performs full-text search over indexed file content and names.
func (s *Store) SearchFiles(ctx context.Context, opts *SearchFilesOptions) ([]*FileSearchResult, error) {
	return s.driver.SearchFiles(ctx, opts)
}
