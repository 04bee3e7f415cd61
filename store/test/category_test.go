package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/filemap/store"
)

func TestCategoryStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	// A fresh workspace starts with the default categories.
	defaults, err := ts.ListCategories(ctx, &store.FindCategory{})
	require.NoError(t, err)
	require.Len(t, defaults, 5)

	names := map[string]bool{}
	for _, category := range defaults {
		names[category.Name] = true
	}
	for _, name := range []string{"uncategorized", "type", "status", "priority", "topic"} {
		require.True(t, names[name], "missing default category %q", name)
	}

	created, err := ts.CreateCategory(ctx, &store.Category{
		UID:         "category-project",
		Name:        "project",
		Description: "Project membership",
		Color:       "#112233",
		Priority:    10,
	})
	require.NoError(t, err)
	require.Equal(t, "project", created.Name)
	require.NotZero(t, created.CreatedTs)

	found, err := ts.GetCategory(ctx, &store.FindCategory{UID: &created.UID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.Name, found.Name)
	require.Equal(t, created.Color, found.Color)

	missing := "category-missing"
	notFound, err := ts.GetCategory(ctx, &store.FindCategory{UID: &missing})
	require.NoError(t, err)
	require.Nil(t, notFound)

	require.NoError(t, ts.DeleteCategory(ctx, &store.DeleteCategory{UID: created.UID}))
	deleted, err := ts.GetCategory(ctx, &store.FindCategory{UID: &created.UID})
	require.NoError(t, err)
	require.Nil(t, deleted)
}

func TestMutuallyExclusiveCategory(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	statusName := "status"
	status, err := ts.GetCategory(ctx, &store.FindCategory{Name: &statusName})
	require.NoError(t, err)
	require.NotNil(t, status)
	require.True(t, status.MutuallyExclusive)

	topicName := "topic"
	topic, err := ts.GetCategory(ctx, &store.FindCategory{Name: &topicName})
	require.NoError(t, err)
	require.NotNil(t, topic)
	require.False(t, topic.MutuallyExclusive)
}
