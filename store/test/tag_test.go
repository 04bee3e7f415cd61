package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/filemap/store"
)

func TestTagStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	topicName := "topic"
	topic, err := ts.GetCategory(ctx, &store.FindCategory{Name: &topicName})
	require.NoError(t, err)
	require.NotNil(t, topic)

	created, err := ts.CreateTag(ctx, &store.Tag{
		UID:         "tag-golang",
		Name:        "golang",
		CategoryUID: topic.UID,
		Description: "Go language",
		Color:       "#00ADD8",
	})
	require.NoError(t, err)
	require.Equal(t, "golang", created.Name)
	require.Equal(t, 0, created.UsageCount)
	require.NotZero(t, created.CreatedTs)

	found, err := ts.GetTag(ctx, &store.FindTag{UID: &created.UID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, topic.UID, found.CategoryUID)

	newName := "go"
	newDescription := "The Go programming language"
	require.NoError(t, ts.UpdateTag(ctx, &store.UpdateTag{
		UID:         created.UID,
		Name:        &newName,
		Description: &newDescription,
	}))
	updated, err := ts.GetTag(ctx, &store.FindTag{UID: &created.UID})
	require.NoError(t, err)
	require.Equal(t, "go", updated.Name)
	require.Equal(t, "The Go programming language", updated.Description)
	require.Equal(t, "#00ADD8", updated.Color)

	byCategory, err := ts.ListTags(ctx, &store.FindTag{CategoryUID: &topic.UID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	require.NoError(t, ts.DeleteTag(ctx, &store.DeleteTag{UID: created.UID}))
	deleted, err := ts.GetTag(ctx, &store.FindTag{UID: &created.UID})
	require.NoError(t, err)
	require.Nil(t, deleted)
}

func TestTagUsageCount(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	tag, err := ts.CreateTag(ctx, &store.Tag{UID: "tag-a", Name: "a"})
	require.NoError(t, err)

	for _, uid := range []string{"file-1", "file-2"} {
		_, err := ts.CreateFile(ctx, &store.File{UID: uid, Name: uid, Path: "/tmp/" + uid})
		require.NoError(t, err)
		require.NoError(t, ts.AddFileTag(ctx, uid, tag.UID))
	}

	found, err := ts.GetTag(ctx, &store.FindTag{UID: &tag.UID})
	require.NoError(t, err)
	require.Equal(t, 2, found.UsageCount)

	// Attaching twice does not double count.
	require.NoError(t, ts.AddFileTag(ctx, "file-1", tag.UID))
	found, err = ts.GetTag(ctx, &store.FindTag{UID: &tag.UID})
	require.NoError(t, err)
	require.Equal(t, 2, found.UsageCount)

	require.NoError(t, ts.RemoveFileTag(ctx, "file-1", tag.UID))
	found, err = ts.GetTag(ctx, &store.FindTag{UID: &tag.UID})
	require.NoError(t, err)
	require.Equal(t, 1, found.UsageCount)

	// Removing a detached tag is a no-op, and the count never goes negative.
	require.NoError(t, ts.RemoveFileTag(ctx, "file-1", tag.UID))
	found, err = ts.GetTag(ctx, &store.FindTag{UID: &tag.UID})
	require.NoError(t, err)
	require.Equal(t, 1, found.UsageCount)
}
