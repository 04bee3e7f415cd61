package graph

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/hrygo/filemap/store"
)

// Build modes.
const (
	ModeTags  = "tags"  // tag nodes + co-occurrence edges
	ModeFiles = "files" // file nodes + similarity edges
	ModeFull  = "full"  // both, plus file-tag membership edges
)

// ErrInvalidMode is returned when Build is called with an unknown mode.
var ErrInvalidMode = errors.New("invalid graph mode")

// ErrInvalidArgument is returned for caller-input violations such as a
// negative topN.
var ErrInvalidArgument = errors.New("invalid argument")

// Config contains configuration for graph building.
type Config struct {
	// MinCooccurrence is the minimum number of shared files for a tag
	// pair to produce an edge. Pairs below it are treated as noise.
	MinCooccurrence int
	// MinSimilarity is the minimum (exclusive) Jaccard similarity
	// between two files' tag sets to create an edge.
	MinSimilarity float64
}

// DefaultConfig returns default graph configuration.
func DefaultConfig() Config {
	return Config{
		MinCooccurrence: 2,
		MinSimilarity:   0.3,
	}
}

// Builder builds knowledge graphs from the entity store.
type Builder struct {
	store  *store.Store
	config Config
}

// NewBuilder creates a new Builder.
func NewBuilder(s *store.Store) *Builder {
	return &Builder{store: s, config: DefaultConfig()}
}

// NewBuilderWithConfig creates a builder with custom config.
func NewBuilderWithConfig(s *store.Store, config Config) *Builder {
	return &Builder{store: s, config: config}
}

// Build constructs a fresh graph from current store data. Every call
// starts from an empty graph; nothing is carried over between calls.
func (b *Builder) Build(ctx context.Context, mode string) (*Graph, error) {
	switch mode {
	case ModeTags, ModeFiles, ModeFull:
	default:
		return nil, errors.Wrapf(ErrInvalidMode, "mode %q", mode)
	}

	tags, err := b.store.ListTags(ctx, &store.FindTag{})
	if err != nil {
		return nil, errors.Wrap(err, "list tags")
	}
	files, err := b.store.ListFiles(ctx, &store.FindFile{})
	if err != nil {
		return nil, errors.Wrap(err, "list files")
	}

	g := NewGraph()
	if mode == ModeTags || mode == ModeFull {
		b.buildTagGraph(ctx, g, tags, files)
	}
	if mode == ModeFiles || mode == ModeFull {
		b.buildFileGraph(g, files)
	}
	if mode == ModeFull {
		b.linkTagsAndFiles(g, files)
	}
	return g, nil
}

// buildTagGraph adds one node per tag and a co-occurrence edge for every
// tag pair applied together to at least MinCooccurrence files.
func (b *Builder) buildTagGraph(ctx context.Context, g *Graph, tags []*store.Tag, files []*store.File) {
	usage := make(map[string]int, len(tags))
	for _, tag := range tags {
		usage[tag.UID] = tag.UsageCount
		g.AddNode(&Node{
			ID:         tag.UID,
			Type:       NodeTypeTag,
			Name:       tag.Name,
			Category:   b.categoryName(ctx, tag.CategoryUID),
			UsageCount: tag.UsageCount,
		})
	}

	type pair struct{ a, b string }
	cooccurrence := make(map[pair]int)
	for _, file := range files {
		for i, tag1 := range file.Tags {
			for _, tag2 := range file.Tags[i+1:] {
				p := pair{tag1, tag2}
				if p.b < p.a {
					p.a, p.b = p.b, p.a
				}
				cooccurrence[p]++
			}
		}
	}

	// Sorted pair order keeps edge insertion deterministic across builds.
	pairs := make([]pair, 0, len(cooccurrence))
	for p := range cooccurrence {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	for _, p := range pairs {
		count := cooccurrence[p]
		if count < b.config.MinCooccurrence {
			continue
		}

		// Normalize against the more-used tag: how much of its usage is
		// explained by co-occurring with the other.
		maxUsage := usage[p.a]
		if usage[p.b] > maxUsage {
			maxUsage = usage[p.b]
		}
		strength := 0.0
		if maxUsage > 0 {
			strength = float64(count) / float64(maxUsage)
		}

		// A pair referencing a deleted tag has no node; AddEdge drops it.
		g.AddEdge(&Edge{
			Source:   p.a,
			Target:   p.b,
			Type:     EdgeTypeCooccurrence,
			Weight:   float64(count),
			Strength: strength,
		})
	}
}

// buildFileGraph adds one node per file and a similarity edge for every
// file pair whose tag sets overlap above MinSimilarity.
func (b *Builder) buildFileGraph(g *Graph, files []*store.File) {
	for _, file := range files {
		g.AddNode(&Node{
			ID:       file.UID,
			Type:     NodeTypeFile,
			Name:     file.Name,
			Size:     file.Size,
			TagCount: len(file.Tags),
		})
	}

	for i, file1 := range files {
		for _, file2 := range files[i+1:] {
			similarity := jaccard(file1.Tags, file2.Tags)
			if similarity > b.config.MinSimilarity {
				g.AddEdge(&Edge{
					Source: file1.UID,
					Target: file2.UID,
					Type:   EdgeTypeSimilarity,
					Weight: similarity,
				})
			}
		}
	}
}

// linkTagsAndFiles adds membership edges between file nodes and the tag
// nodes they carry. Both endpoints must already exist from the earlier
// passes; AddEdge silently drops the rest.
func (b *Builder) linkTagsAndFiles(g *Graph, files []*store.File) {
	for _, file := range files {
		for _, tagUID := range file.Tags {
			g.AddEdge(&Edge{
				Source: file.UID,
				Target: tagUID,
				Type:   EdgeTypeTagged,
			})
		}
	}
}

// categoryName resolves a category UID to its display name, tolerating
// missing references.
func (b *Builder) categoryName(ctx context.Context, categoryUID string) string {
	if categoryUID == "" {
		return "unknown"
	}
	category, err := b.store.GetCategory(ctx, &store.FindCategory{UID: &categoryUID})
	if err != nil || category == nil {
		return "unknown"
	}
	return category.Name
}

// jaccard computes the Jaccard similarity of two tag-UID lists.
func jaccard(tags1, tags2 []string) float64 {
	if len(tags1) == 0 || len(tags2) == 0 {
		return 0
	}

	set1 := make(map[string]struct{}, len(tags1))
	for _, t := range tags1 {
		set1[t] = struct{}{}
	}
	set2 := make(map[string]struct{}, len(tags2))
	for _, t := range tags2 {
		set2[t] = struct{}{}
	}

	intersection := 0
	for t := range set1 {
		if _, ok := set2[t]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TagScore is a recommended tag with its accumulated score.
type TagScore struct {
	TagUID string
	Score  float64
}

// RecommendTags suggests tags for a file based on co-occurrence with the
// file's existing tags in a tags-mode graph. Tags already on the file are
// excluded. An unknown file or a file without tags yields an empty list.
func (b *Builder) RecommendTags(ctx context.Context, g *Graph, fileUID string, topN int) ([]TagScore, error) {
	if topN < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "topN %d", topN)
	}

	file, err := b.store.GetFile(ctx, &store.FindFile{UID: &fileUID})
	if err != nil {
		return nil, errors.Wrap(err, "get file")
	}
	if file == nil || len(file.Tags) == 0 {
		return []TagScore{}, nil
	}

	existing := make(map[string]struct{}, len(file.Tags))
	for _, tagUID := range file.Tags {
		existing[tagUID] = struct{}{}
	}

	scores := make(map[string]float64)
	var encountered []string
	for _, tagUID := range file.Tags {
		for _, neighbor := range g.Neighbors(tagUID) {
			node := g.Node(neighbor)
			if node == nil || node.Type != NodeTypeTag {
				continue
			}
			if _, ok := existing[neighbor]; ok {
				continue
			}

			edge := g.EdgeBetween(tagUID, neighbor)
			weight := 1.0
			if edge != nil && edge.Weight > 0 {
				weight = edge.Weight
			}
			if _, seen := scores[neighbor]; !seen {
				encountered = append(encountered, neighbor)
			}
			scores[neighbor] += weight
		}
	}

	// Ties keep first-encountered order; the sort is stable over it.
	candidates := make([]TagScore, 0, len(encountered))
	for _, tagUID := range encountered {
		candidates = append(candidates, TagScore{TagUID: tagUID, Score: scores[tagUID]})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if topN < len(candidates) {
		candidates = candidates[:topN]
	}
	return candidates, nil
}
