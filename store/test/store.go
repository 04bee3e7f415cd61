package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/store"
	"github.com/hrygo/filemap/store/db"
)

// NewTestingStore creates a store backed by a throwaway SQLite database
// under the test's temp dir. The schema is migrated and the default
// categories are seeded before returning.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
		DSN:    fmt.Sprintf("%s/filemap_test.db", dir),
	}

	driver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	s := store.New(driver, p)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	return s
}
