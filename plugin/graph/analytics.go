package graph

import (
	"sort"

	"github.com/pkg/errors"
)

// All analytics are read-only queries over a built graph; they never
// mutate it and are safe to run concurrently against the same instance.

// Hub is a node with its degree.
type Hub struct {
	ID     string
	Degree int
}

// FindHubs ranks nodes by degree, descending. Ties keep node insertion
// order, so results are stable across runs on identical data.
func (g *Graph) FindHubs(topN int) ([]Hub, error) {
	if topN < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "topN %d", topN)
	}

	hubs := make([]Hub, 0, len(g.order))
	for _, id := range g.order {
		hubs = append(hubs, Hub{ID: id, Degree: g.Degree(id)})
	}
	sort.SliceStable(hubs, func(i, j int) bool {
		return hubs[i].Degree > hubs[j].Degree
	})

	if topN < len(hubs) {
		hubs = hubs[:topN]
	}
	return hubs, nil
}

// FindOrphans returns nodes with degree <= 1, in insertion order. A node
// with a single weak link still counts as functionally isolated.
// nodeType filters to one kind; the empty string matches all.
func (g *Graph) FindOrphans(nodeType string) []string {
	orphans := []string{}
	for _, id := range g.order {
		if g.Degree(id) > 1 {
			continue
		}
		if nodeType != "" && g.nodes[id].Type != nodeType {
			continue
		}
		orphans = append(orphans, id)
	}
	return orphans
}

// FindCommunities partitions nodes into disjoint groups by greedy
// modularity maximization: starting from singleton communities, the two
// connected communities whose merger yields the largest positive
// modularity gain are merged until no improving merge remains. The
// partition is best-effort, not globally optimal. Community indices are
// 0-based and assigned in node insertion order.
func (g *Graph) FindCommunities() map[int][]string {
	result := map[int][]string{}
	if len(g.order) == 0 {
		return result
	}

	index := make(map[string]int, len(g.order))
	for i, id := range g.order {
		index[id] = i
	}

	n := len(g.order)
	label := make([]int, n) // node -> community label
	degSum := make([]float64, n)
	links := make([]map[int]float64, n) // community -> community -> edge count
	for i, id := range g.order {
		label[i] = i
		degSum[i] = float64(g.Degree(id))
		links[i] = make(map[int]float64)
	}
	for _, edge := range g.edges {
		a, b := index[edge.Source], index[edge.Target]
		links[a][b]++
		links[b][a]++
	}

	m := float64(len(g.edges))
	if m > 0 {
		active := make(map[int]struct{}, n)
		for i := 0; i < n; i++ {
			active[i] = struct{}{}
		}

		for {
			bestA, bestB := -1, -1
			bestGain := 0.0
			for a := range active {
				for b, weight := range links[a] {
					if b <= a {
						continue
					}
					gain := weight/m - degSum[a]*degSum[b]/(2*m*m)
					// Equal gains prefer the lowest community pair so the
					// partition is reproducible.
					if gain > bestGain ||
						(gain == bestGain && bestGain > 0 && (bestA == -1 || a < bestA || (a == bestA && b < bestB))) {
						bestGain = gain
						bestA, bestB = a, b
					}
				}
			}
			if bestA < 0 || bestGain <= 0 {
				break
			}

			// Merge bestB into bestA.
			for c, weight := range links[bestB] {
				if c == bestA {
					continue
				}
				links[bestA][c] += weight
				links[c][bestA] += weight
				delete(links[c], bestB)
			}
			delete(links[bestA], bestB)
			degSum[bestA] += degSum[bestB]
			links[bestB] = nil
			delete(active, bestB)
			for i := range label {
				if label[i] == bestB {
					label[i] = bestA
				}
			}
		}
	}

	// Renumber communities 0-based in insertion order of their first node.
	renumber := make(map[int]int)
	next := 0
	for i, id := range g.order {
		community, ok := renumber[label[i]]
		if !ok {
			community = next
			renumber[label[i]] = community
			next++
		}
		result[community] = append(result[community], id)
	}
	return result
}

// Stats contains aggregate graph statistics. The JSON field names are
// part of the interchange format.
type Stats struct {
	TotalNodes          int     `json:"total_nodes"`
	TotalEdges          int     `json:"total_edges"`
	TagNodes            int     `json:"tag_nodes"`
	FileNodes           int     `json:"file_nodes"`
	AvgDegree           float64 `json:"avg_degree"`
	Density             float64 `json:"density"`
	ConnectedComponents int     `json:"connected_components"`
}

// Stats computes aggregate statistics. All values are zero on an empty
// graph; density is 2E/(N(N-1)) for an undirected simple graph.
func (g *Graph) Stats() Stats {
	stats := Stats{
		TotalNodes: len(g.nodes),
		TotalEdges: len(g.edges),
	}
	if stats.TotalNodes == 0 {
		return stats
	}

	degreeSum := 0
	for _, id := range g.order {
		degreeSum += g.Degree(id)
		switch g.nodes[id].Type {
		case NodeTypeTag:
			stats.TagNodes++
		case NodeTypeFile:
			stats.FileNodes++
		}
	}
	stats.AvgDegree = float64(degreeSum) / float64(stats.TotalNodes)
	if stats.TotalNodes > 1 {
		stats.Density = 2 * float64(stats.TotalEdges) / (float64(stats.TotalNodes) * float64(stats.TotalNodes-1))
	}
	stats.ConnectedComponents = g.countComponents()
	return stats
}

// countComponents counts connected components with union-find.
func (g *Graph) countComponents() int {
	parent := make(map[string]string, len(g.nodes))
	for _, id := range g.order {
		parent[id] = id
	}

	var find func(string) string
	find = func(id string) string {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}

	for _, edge := range g.edges {
		a, b := find(edge.Source), find(edge.Target)
		if a != b {
			parent[a] = b
		}
	}

	roots := make(map[string]struct{})
	for _, id := range g.order {
		roots[find(id)] = struct{}{}
	}
	return len(roots)
}
