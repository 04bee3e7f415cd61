package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/store"
	"github.com/hrygo/filemap/store/db/postgres"
	"github.com/hrygo/filemap/store/db/sqlite"
)

// SQLite is the default driver for single-user workspaces.
// PostgreSQL is supported for shared or larger installations.

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' and 'postgres' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
