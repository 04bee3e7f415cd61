package graph

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

// chainGraph builds a -- b -- c -- d plus an isolated node e.
func chainGraph() *Graph {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(tagNode(id))
	}
	g.AddEdge(&Edge{Source: "a", Target: "b", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "b", Target: "c", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "c", Target: "d", Type: EdgeTypeCooccurrence})
	return g
}

func TestFindHubs(t *testing.T) {
	g := chainGraph()

	hubs, err := g.FindHubs(3)
	if err != nil {
		t.Fatalf("FindHubs() error: %v", err)
	}
	if len(hubs) != 3 {
		t.Fatalf("len(hubs) = %d, want 3", len(hubs))
	}
	// b and c both have degree 2; b was inserted first and wins the tie.
	if hubs[0].ID != "b" || hubs[0].Degree != 2 {
		t.Errorf("hubs[0] = %+v, want {b 2}", hubs[0])
	}
	if hubs[1].ID != "c" || hubs[1].Degree != 2 {
		t.Errorf("hubs[1] = %+v, want {c 2}", hubs[1])
	}
	if hubs[2].ID != "a" || hubs[2].Degree != 1 {
		t.Errorf("hubs[2] = %+v, want {a 1}", hubs[2])
	}
}

func TestFindHubsBounds(t *testing.T) {
	g := chainGraph()

	if _, err := g.FindHubs(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FindHubs(-1) error = %v, want ErrInvalidArgument", err)
	}

	hubs, err := g.FindHubs(100)
	if err != nil {
		t.Fatalf("FindHubs(100) error: %v", err)
	}
	if len(hubs) != 5 {
		t.Errorf("len(hubs) = %d, want all 5 nodes", len(hubs))
	}

	hubs, err = g.FindHubs(0)
	if err != nil {
		t.Fatalf("FindHubs(0) error: %v", err)
	}
	if len(hubs) != 0 {
		t.Errorf("FindHubs(0) returned %d hubs, want 0", len(hubs))
	}
}

func TestFindOrphans(t *testing.T) {
	g := NewGraph()
	g.AddNode(tagNode("t1"))
	g.AddNode(tagNode("t2"))
	g.AddNode(tagNode("t3"))
	g.AddNode(fileNode("f1"))
	g.AddNode(fileNode("f2"))
	g.AddEdge(&Edge{Source: "t1", Target: "t2", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "t1", Target: "t3", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "f1", Target: "t1", Type: EdgeTypeTagged})

	tests := []struct {
		name     string
		nodeType string
		want     []string
	}{
		// t1 has degree 3; everything else has degree <= 1.
		{name: "all types", nodeType: "", want: []string{"t2", "t3", "f1", "f2"}},
		{name: "tags only", nodeType: NodeTypeTag, want: []string{"t2", "t3"}},
		{name: "files only", nodeType: NodeTypeFile, want: []string{"f1", "f2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.FindOrphans(tt.nodeType)
			if len(got) != len(tt.want) {
				t.Fatalf("FindOrphans(%q) = %v, want %v", tt.nodeType, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("FindOrphans(%q)[%d] = %q, want %q", tt.nodeType, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFindCommunities(t *testing.T) {
	// Two triangles joined by a single bridge edge.
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "x", "y", "z"} {
		g.AddNode(tagNode(id))
	}
	g.AddEdge(&Edge{Source: "a", Target: "b", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "b", Target: "c", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "a", Target: "c", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "x", Target: "y", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "y", Target: "z", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "x", Target: "z", Type: EdgeTypeCooccurrence})
	g.AddEdge(&Edge{Source: "c", Target: "x", Type: EdgeTypeCooccurrence})

	communities := g.FindCommunities()

	membership := map[string]int{}
	total := 0
	for id, members := range communities {
		for _, node := range members {
			membership[node] = id
			total++
		}
	}
	if total != g.NodeCount() {
		t.Fatalf("communities cover %d nodes, want %d", total, g.NodeCount())
	}

	if membership["a"] != membership["b"] || membership["b"] != membership["c"] {
		t.Errorf("triangle a/b/c split across communities: %v", membership)
	}
	if membership["x"] != membership["y"] || membership["y"] != membership["z"] {
		t.Errorf("triangle x/y/z split across communities: %v", membership)
	}
	if membership["a"] == membership["x"] {
		t.Errorf("the two triangles merged into one community: %v", membership)
	}
}

func TestFindCommunitiesDegenerate(t *testing.T) {
	empty := NewGraph()
	if got := empty.FindCommunities(); len(got) != 0 {
		t.Errorf("empty graph communities = %v, want empty map", got)
	}

	// Isolated nodes each get their own community, numbered in order.
	g := NewGraph()
	g.AddNode(tagNode("a"))
	g.AddNode(tagNode("b"))
	communities := g.FindCommunities()
	if len(communities) != 2 {
		t.Fatalf("len(communities) = %d, want 2", len(communities))
	}
	if len(communities[0]) != 1 || communities[0][0] != "a" {
		t.Errorf("communities[0] = %v, want [a]", communities[0])
	}
	if len(communities[1]) != 1 || communities[1][0] != "b" {
		t.Errorf("communities[1] = %v, want [b]", communities[1])
	}
}

func TestStats(t *testing.T) {
	g := NewGraph()
	g.AddNode(tagNode("t1"))
	g.AddNode(tagNode("t2"))
	g.AddNode(fileNode("f1"))
	g.AddEdge(&Edge{Source: "t1", Target: "t2", Type: EdgeTypeCooccurrence})

	stats := g.Stats()
	if stats.TotalNodes != 3 || stats.TotalEdges != 1 {
		t.Errorf("totals = %d nodes, %d edges, want 3, 1", stats.TotalNodes, stats.TotalEdges)
	}
	if stats.TagNodes != 2 || stats.FileNodes != 1 {
		t.Errorf("node kinds = %d tags, %d files, want 2, 1", stats.TagNodes, stats.FileNodes)
	}
	// Sum of degrees is 2E.
	if want := 2.0 / 3.0; math.Abs(stats.AvgDegree-want) > 1e-9 {
		t.Errorf("AvgDegree = %v, want %v", stats.AvgDegree, want)
	}
	if want := 1.0 / 3.0; math.Abs(stats.Density-want) > 1e-9 {
		t.Errorf("Density = %v, want %v", stats.Density, want)
	}
	if stats.ConnectedComponents != 2 {
		t.Errorf("ConnectedComponents = %d, want 2", stats.ConnectedComponents)
	}
}

func TestStatsEmptyGraph(t *testing.T) {
	stats := NewGraph().Stats()
	if stats != (Stats{}) {
		t.Errorf("empty graph stats = %+v, want all zeros", stats)
	}
}
