package graph

import (
	"fmt"
	"sort"
	"strings"
)

// NodeJSON is the interchange form of a node. Kind-specific fields are
// pointers so the other kind's fields are omitted entirely.
type NodeJSON struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Category   *string `json:"category,omitempty"`
	UsageCount *int    `json:"usage_count,omitempty"`
	Size       *int64  `json:"size,omitempty"`
	TagCount   *int    `json:"tag_count,omitempty"`
}

// EdgeJSON is the interchange form of an edge.
type EdgeJSON struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Type     string   `json:"type"`
	Weight   *float64 `json:"weight,omitempty"`
	Strength *float64 `json:"strength,omitempty"`
}

// Document is the interchange form of a whole graph, suitable for
// external visualization tools.
type Document struct {
	Nodes []NodeJSON `json:"nodes"`
	Edges []EdgeJSON `json:"edges"`
	Stats Stats      `json:"stats"`
}

// ExportJSON converts the graph into its interchange document. Nodes and
// edges keep insertion order.
func (g *Graph) ExportJSON() *Document {
	doc := &Document{
		Nodes: make([]NodeJSON, 0, len(g.order)),
		Edges: make([]EdgeJSON, 0, len(g.edges)),
		Stats: g.Stats(),
	}

	for _, id := range g.order {
		node := g.nodes[id]
		nj := NodeJSON{
			ID:   node.ID,
			Type: node.Type,
			Name: node.Name,
		}
		switch node.Type {
		case NodeTypeTag:
			category := node.Category
			usageCount := node.UsageCount
			nj.Category = &category
			nj.UsageCount = &usageCount
		case NodeTypeFile:
			size := node.Size
			tagCount := node.TagCount
			nj.Size = &size
			nj.TagCount = &tagCount
		}
		doc.Nodes = append(doc.Nodes, nj)
	}

	for _, edge := range g.edges {
		ej := EdgeJSON{
			Source: edge.Source,
			Target: edge.Target,
			Type:   edge.Type,
		}
		// Tagged edges are pure membership links and carry no metrics.
		if edge.Type != EdgeTypeTagged {
			weight := edge.Weight
			ej.Weight = &weight
			if edge.Type == EdgeTypeCooccurrence {
				strength := edge.Strength
				ej.Strength = &strength
			}
		}
		doc.Edges = append(doc.Edges, ej)
	}
	return doc
}

// VisualizeText renders a terminal summary of the graph: a header, the
// most connected nodes, and the strongest tag relations. maxNodes caps
// the hub listing; values below 1 fall back to 10.
func (g *Graph) VisualizeText(maxNodes int) string {
	if len(g.nodes) == 0 {
		return "graph is empty"
	}
	if maxNodes < 1 {
		maxNodes = 10
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Knowledge Graph (nodes: %d, edges: %d) ===\n", len(g.nodes), len(g.edges))

	hubs, _ := g.FindHubs(maxNodes)
	sb.WriteString("\nMost connected:\n")
	for _, hub := range hubs {
		node := g.nodes[hub.ID]
		fmt.Fprintf(&sb, "  [%s] %s (connections: %d)\n", node.Type, node.Name, hub.Degree)
	}

	relations := make([]*Edge, 0, len(g.edges))
	for _, edge := range g.edges {
		if edge.Type == EdgeTypeCooccurrence {
			relations = append(relations, edge)
		}
	}
	if len(relations) > 0 {
		sort.SliceStable(relations, func(i, j int) bool {
			return relations[i].Weight > relations[j].Weight
		})
		if len(relations) > 10 {
			relations = relations[:10]
		}
		sb.WriteString("\nStrongest tag relations:\n")
		for _, edge := range relations {
			fmt.Fprintf(&sb, "  %s <--(%d)--> %s\n",
				g.nodes[edge.Source].Name, int(edge.Weight), g.nodes[edge.Target].Name)
		}
	}
	return sb.String()
}
