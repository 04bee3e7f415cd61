package store

import (
	"time"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Caches
	tagCache      *cache.Cache // cache for tags by UID
	categoryCache *cache.Cache // cache for categories by UID
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:        driver,
		profile:       profile,
		tagCache:      cache.New(cacheConfig),
		categoryCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.tagCache.Close()
	s.categoryCache.Close()

	return s.driver.Close()
}
