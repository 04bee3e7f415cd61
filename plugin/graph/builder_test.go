package graph

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/filemap/store"
	storetest "github.com/hrygo/filemap/store/test"
)

// seedWorkspace creates three tags and four files:
//
//	golang:   f1, f2, f3, f4 (usage 4)
//	database: f1, f2         (usage 2)
//	testing:  f3             (usage 1)
//
// Only the golang/database pair co-occurs often enough for an edge.
func seedWorkspace(ctx context.Context, t *testing.T, s *store.Store) {
	t.Helper()

	topicName := "topic"
	topic, err := s.GetCategory(ctx, &store.FindCategory{Name: &topicName})
	require.NoError(t, err)
	require.NotNil(t, topic)

	for _, tag := range []*store.Tag{
		{UID: "tag-golang", Name: "golang", CategoryUID: topic.UID},
		{UID: "tag-database", Name: "database", CategoryUID: topic.UID},
		{UID: "tag-testing", Name: "testing", CategoryUID: topic.UID},
	} {
		_, err := s.CreateTag(ctx, tag)
		require.NoError(t, err)
	}

	attachments := map[string][]string{
		"file-1": {"tag-golang", "tag-database"},
		"file-2": {"tag-golang", "tag-database"},
		"file-3": {"tag-golang", "tag-testing"},
		"file-4": {"tag-golang"},
	}
	for _, uid := range []string{"file-1", "file-2", "file-3", "file-4"} {
		_, err := s.CreateFile(ctx, &store.File{UID: uid, Name: uid + ".md", Path: "/tmp/" + uid + ".md", Size: 100})
		require.NoError(t, err)
		for _, tagUID := range attachments[uid] {
			require.NoError(t, s.AddFileTag(ctx, uid, tagUID))
		}
	}
}

func TestBuildTagsMode(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	g, err := NewBuilder(s).Build(ctx, ModeTags)
	require.NoError(t, err)

	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())

	golang := g.Node("tag-golang")
	require.NotNil(t, golang)
	require.Equal(t, NodeTypeTag, golang.Type)
	require.Equal(t, "topic", golang.Category)
	require.Equal(t, 4, golang.UsageCount)

	edge := g.EdgeBetween("tag-golang", "tag-database")
	require.NotNil(t, edge)
	require.Equal(t, EdgeTypeCooccurrence, edge.Type)
	require.Equal(t, 2.0, edge.Weight)
	// Normalized against golang's usage of 4.
	require.InDelta(t, 0.5, edge.Strength, 1e-9)

	// The golang/testing pair co-occurs once, below the threshold.
	require.Nil(t, g.EdgeBetween("tag-golang", "tag-testing"))
}

func TestBuildFilesMode(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	g, err := NewBuilder(s).Build(ctx, ModeFiles)
	require.NoError(t, err)

	require.Equal(t, 4, g.NodeCount())
	// Every file pair shares the golang tag; all Jaccard values exceed 0.3.
	require.Equal(t, 6, g.EdgeCount())

	identical := g.EdgeBetween("file-1", "file-2")
	require.NotNil(t, identical)
	require.Equal(t, EdgeTypeSimilarity, identical.Type)
	require.InDelta(t, 1.0, identical.Weight, 1e-9)

	partial := g.EdgeBetween("file-1", "file-4")
	require.NotNil(t, partial)
	require.InDelta(t, 0.5, partial.Weight, 1e-9)
}

func TestBuildFullMode(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	g, err := NewBuilder(s).Build(ctx, ModeFull)
	require.NoError(t, err)

	require.Equal(t, 7, g.NodeCount())
	// 1 cooccurrence + 6 similarity + 7 membership edges.
	require.Equal(t, 14, g.EdgeCount())

	tagged := g.EdgeBetween("file-1", "tag-golang")
	require.NotNil(t, tagged)
	require.Equal(t, EdgeTypeTagged, tagged.Type)

	stats := g.Stats()
	require.Equal(t, 3, stats.TagNodes)
	require.Equal(t, 4, stats.FileNodes)
	require.Equal(t, 1, stats.ConnectedComponents)
}

func TestBuildInvalidMode(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)

	_, err := NewBuilder(s).Build(ctx, "galaxy")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidMode))
}

func TestBuildEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)

	g, err := NewBuilder(s).Build(ctx, ModeFull)
	require.NoError(t, err)
	require.Equal(t, 0, g.NodeCount())
	require.Equal(t, 0, g.EdgeCount())
}

func TestBuildIsDeterministic(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	builder := NewBuilder(s)
	first, err := builder.Build(ctx, ModeFull)
	require.NoError(t, err)
	second, err := builder.Build(ctx, ModeFull)
	require.NoError(t, err)

	require.Equal(t, first.NodeCount(), second.NodeCount())
	require.Equal(t, first.EdgeCount(), second.EdgeCount())
	for i, node := range first.Nodes() {
		require.Equal(t, node.ID, second.Nodes()[i].ID)
	}
	for i, edge := range first.Edges() {
		require.Equal(t, edge.Source, second.Edges()[i].Source)
		require.Equal(t, edge.Target, second.Edges()[i].Target)
	}
}

func TestBuildMissingCategory(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)

	_, err := s.CreateTag(ctx, &store.Tag{UID: "tag-stray", Name: "stray", CategoryUID: "category-gone"})
	require.NoError(t, err)

	g, err := NewBuilder(s).Build(ctx, ModeTags)
	require.NoError(t, err)
	require.Equal(t, "unknown", g.Node("tag-stray").Category)
}

func TestBuildCustomConfig(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	// Lowering the co-occurrence floor surfaces the golang/testing pair too.
	g, err := NewBuilderWithConfig(s, Config{MinCooccurrence: 1, MinSimilarity: 0.3}).Build(ctx, ModeTags)
	require.NoError(t, err)
	require.Equal(t, 2, g.EdgeCount())
	require.NotNil(t, g.EdgeBetween("tag-golang", "tag-testing"))
}

func TestRecommendTags(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	builder := NewBuilder(s)
	g, err := builder.Build(ctx, ModeTags)
	require.NoError(t, err)

	// file-4 carries only golang; database co-occurs with it twice.
	scores, err := builder.RecommendTags(ctx, g, "file-4", 5)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, "tag-database", scores[0].TagUID)
	require.True(t, math.Abs(scores[0].Score-2.0) < 1e-9)

	// file-1 already carries both connected tags; nothing left to suggest.
	scores, err = builder.RecommendTags(ctx, g, "file-1", 5)
	require.NoError(t, err)
	require.Empty(t, scores)
}

// Strength normalizes against the stated usage count, which can exceed
// what the current file set shows (usage survives file deletions).
func TestBuildTagGraphStrengthNormalization(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)

	tags := []*store.Tag{
		{UID: "A", Name: "A", UsageCount: 5},
		{UID: "B", Name: "B", UsageCount: 3},
		{UID: "C", Name: "C", UsageCount: 1},
	}
	files := []*store.File{
		{UID: "F1", Tags: []string{"A", "B"}},
		{UID: "F2", Tags: []string{"A", "B"}},
		{UID: "F3", Tags: []string{"A", "C"}},
	}

	g := NewGraph()
	NewBuilder(s).buildTagGraph(ctx, g, tags, files)

	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())

	edge := g.EdgeBetween("A", "B")
	require.NotNil(t, edge)
	require.Equal(t, 2.0, edge.Weight)
	require.InDelta(t, 0.4, edge.Strength, 1e-9)
	require.Nil(t, g.EdgeBetween("A", "C"))
	require.InDelta(t, 1.0/3.0, g.Stats().Density, 1e-9)
}

func TestHandshakeLemma(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	for _, mode := range []string{ModeTags, ModeFiles, ModeFull} {
		g, err := NewBuilder(s).Build(ctx, mode)
		require.NoError(t, err)

		degreeSum := 0
		for _, node := range g.Nodes() {
			degreeSum += g.Degree(node.ID)
		}
		require.Equal(t, 2*g.EdgeCount(), degreeSum, "mode %s", mode)

		stats := g.Stats()
		require.GreaterOrEqual(t, stats.Density, 0.0, "mode %s", mode)
		require.LessOrEqual(t, stats.Density, 1.0, "mode %s", mode)
	}
}

func TestRecommendTagsEdgeCases(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewTestingStore(ctx, t)
	seedWorkspace(ctx, t, s)

	builder := NewBuilder(s)
	g, err := builder.Build(ctx, ModeTags)
	require.NoError(t, err)

	_, err = builder.RecommendTags(ctx, g, "file-4", -1)
	require.True(t, errors.Is(err, ErrInvalidArgument))

	scores, err := builder.RecommendTags(ctx, g, "file-nonexistent", 5)
	require.NoError(t, err)
	require.Empty(t, scores)

	scores, err = builder.RecommendTags(ctx, g, "file-4", 0)
	require.NoError(t, err)
	require.Empty(t, scores)
}
