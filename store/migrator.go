package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// Migration flow:
// 1. If the database is uninitialized, apply migration/{driver}/LATEST.sql.
// 2. Seed the default categories that are still missing.
//
// Incremental migrations are not needed yet; LATEST.sql is the full schema
// for fresh installations.

//go:embed migration
var migrationFS embed.FS

// LatestSchemaFileName is the name of the latest schema file.
const LatestSchemaFileName = "LATEST.sql"

// Migrate initializes the database schema and seed data.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}

	if !initialized {
		if err := s.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		slog.Info("database initialized", slog.String("driver", s.profile.Driver))
	}

	if err := s.seedDefaultCategories(ctx); err != nil {
		return errors.Wrap(err, "failed to seed default categories")
	}
	return nil
}

func (s *Store) applyLatestSchema(ctx context.Context) error {
	schemaPath := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(schemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file %q", schemaPath)
	}

	if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrapf(err, "failed to execute statement in %q", schemaPath)
	}
	return nil
}

// defaultCategories mirrors the categories every fresh workspace starts with.
var defaultCategories = []*Category{
	{Name: "uncategorized", Description: "Uncategorized tags", Color: "#CCCCCC", Priority: 999},
	{Name: "type", Description: "File type", MutuallyExclusive: true, Color: "#4A90E2", Priority: 1},
	{Name: "status", Description: "File status", MutuallyExclusive: true, Color: "#7ED321", Priority: 2},
	{Name: "priority", Description: "Priority level", MutuallyExclusive: true, Color: "#F5A623", Priority: 3},
	{Name: "topic", Description: "Topic tags", Color: "#BD10E0", Priority: 4},
}

func (s *Store) seedDefaultCategories(ctx context.Context) error {
	for _, category := range defaultCategories {
		existing, err := s.GetCategory(ctx, &FindCategory{Name: &category.Name})
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		create := *category
		create.UID = shortuuid.New()
		if _, err := s.CreateCategory(ctx, &create); err != nil {
			return errors.Wrapf(err, "failed to create default category %q", category.Name)
		}
	}
	return nil
}
