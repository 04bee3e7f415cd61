// Package graph builds and analyzes the knowledge graph over tags and files.
package graph

// NodeType constants.
const (
	NodeTypeTag  = "tag"
	NodeTypeFile = "file"
)

// EdgeType constants.
const (
	EdgeTypeCooccurrence = "cooccurrence" // tag-tag, both applied to >= 2 shared files
	EdgeTypeSimilarity   = "similarity"   // file-file, Jaccard over tag sets
	EdgeTypeTagged       = "tagged"       // file-tag membership, full mode only
)

// Node is a tag or file node in the knowledge graph.
type Node struct {
	ID   string
	Type string
	Name string

	// Tag payload.
	Category   string // category name, "unknown" when the category is missing
	UsageCount int

	// File payload.
	Size     int64
	TagCount int
}

// Edge is an undirected edge between two nodes.
type Edge struct {
	Source string
	Target string
	Type   string

	// Weight is the co-occurrence count for cooccurrence edges and the
	// Jaccard similarity for similarity edges. Tagged edges carry none.
	Weight float64
	// Strength is the normalized co-occurrence weight, relative to the
	// more-used tag's total usage count.
	Strength float64
}

// Graph is an undirected graph with at most one edge per node pair.
// It is built once and read-only afterwards; insertion order of nodes
// and edges is preserved so that rankings break ties deterministically.
type Graph struct {
	nodes     map[string]*Node
	order     []string
	edges     []*Edge
	adjacency map[string]map[string]*Edge
	neighbors map[string][]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		adjacency: make(map[string]map[string]*Edge),
		neighbors: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Re-adding an existing ID is a no-op.
func (g *Graph) AddNode(node *Node) {
	if _, ok := g.nodes[node.ID]; ok {
		return
	}
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	g.adjacency[node.ID] = make(map[string]*Edge)
}

// AddEdge adds an undirected edge. The call is a no-op when either
// endpoint is missing, when the endpoints are equal, or when the pair is
// already connected (duplicate edges are rejected, not merged). Returns
// whether the edge was added.
func (g *Graph) AddEdge(edge *Edge) bool {
	if edge.Source == edge.Target {
		return false
	}
	if _, ok := g.nodes[edge.Source]; !ok {
		return false
	}
	if _, ok := g.nodes[edge.Target]; !ok {
		return false
	}
	if _, ok := g.adjacency[edge.Source][edge.Target]; ok {
		return false
	}

	g.edges = append(g.edges, edge)
	g.adjacency[edge.Source][edge.Target] = edge
	g.adjacency[edge.Target][edge.Source] = edge
	g.neighbors[edge.Source] = append(g.neighbors[edge.Source], edge.Target)
	g.neighbors[edge.Target] = append(g.neighbors[edge.Target], edge.Source)
	return true
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	list := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		list = append(list, g.nodes[id])
	}
	return list
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// Neighbors returns the IDs adjacent to the given node, in the order the
// edges were added.
func (g *Graph) Neighbors(id string) []string {
	return g.neighbors[id]
}

// EdgeBetween returns the edge connecting two nodes, or nil.
func (g *Graph) EdgeBetween(a, b string) *Edge {
	return g.adjacency[a][b]
}

// Degree returns the number of edges incident to the given node.
func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
