package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hrygo/filemap/plugin/graph"
	"github.com/hrygo/filemap/store"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build and analyze the knowledge graph",
}

// buildGraph opens the store and builds a graph in the requested mode.
func buildGraph(ctx context.Context, cmd *cobra.Command) (*store.Store, *graph.Graph, error) {
	s, _, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	mode, _ := cmd.Flags().GetString("mode")
	g, err := graph.NewBuilder(s).Build(ctx, mode)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, g, nil
}

var graphGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the graph, write graph.json to the data dir and print stats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		s, p, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		mode, _ := cmd.Flags().GetString("mode")
		g, err := graph.NewBuilder(s).Build(ctx, mode)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(p.Data, "graph.json")
		}
		raw, err := json.MarshalIndent(g.ExportJSON(), "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, raw, 0o640); err != nil {
			return err
		}

		fmt.Printf("graph written to %s\n", output)
		printStats(g.Stats())
		return nil
	},
}

var graphShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a text summary of the graph",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, g, err := buildGraph(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		top, _ := cmd.Flags().GetInt("top")
		fmt.Println(g.VisualizeText(top))
		return nil
	},
}

var graphHubsCmd = &cobra.Command{
	Use:   "hubs",
	Short: "List the most connected nodes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, g, err := buildGraph(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		top, _ := cmd.Flags().GetInt("top")
		hubs, err := g.FindHubs(top)
		if err != nil {
			return err
		}
		for _, hub := range hubs {
			node := g.Node(hub.ID)
			fmt.Printf("[%s] %-30s %d connection(s)\n", node.Type, node.Name, hub.Degree)
		}
		return nil
	},
}

var graphOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List isolated or weakly connected nodes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, g, err := buildGraph(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		nodeType, _ := cmd.Flags().GetString("type")
		orphans := g.FindOrphans(nodeType)
		for _, id := range orphans {
			node := g.Node(id)
			fmt.Printf("[%s] %s\n", node.Type, node.Name)
		}
		fmt.Printf("%d orphan(s)\n", len(orphans))
		return nil
	},
}

var graphClusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group nodes into communities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, g, err := buildGraph(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		communities := g.FindCommunities()
		ids := make([]int, 0, len(communities))
		for id := range communities {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Printf("community %d (%d node(s)):\n", id, len(communities[id]))
			for _, nodeID := range communities[id] {
				fmt.Printf("  %s\n", g.Node(nodeID).Name)
			}
		}
		return nil
	},
}

var graphRecommendCmd = &cobra.Command{
	Use:   "recommend <file>",
	Short: "Suggest tags for a file from co-occurrence patterns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		file, err := resolveFile(ctx, s, args[0])
		if err != nil {
			return err
		}

		builder := graph.NewBuilder(s)
		g, err := builder.Build(ctx, graph.ModeTags)
		if err != nil {
			return err
		}

		top, _ := cmd.Flags().GetInt("top")
		scores, err := builder.RecommendTags(ctx, g, file.UID, top)
		if err != nil {
			return err
		}
		if len(scores) == 0 {
			fmt.Println("no recommendations")
			return nil
		}
		for _, score := range scores {
			node := g.Node(score.TagUID)
			name := score.TagUID
			if node != nil {
				name = node.Name
			}
			fmt.Printf("%-20s %.1f\n", name, score.Score)
		}
		return nil
	},
}

var graphExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the graph as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, g, err := buildGraph(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		raw, err := json.MarshalIndent(g.ExportJSON(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{graphGenerateCmd, graphShowCmd, graphHubsCmd, graphOrphansCmd, graphClusterCmd, graphExportCmd} {
		cmd.Flags().String("mode", graph.ModeFull, `graph mode: "tags", "files" or "full"`)
	}
	graphGenerateCmd.Flags().String("output", "", "output path (defaults to <data>/graph.json)")
	graphShowCmd.Flags().Int("top", 10, "number of hub nodes to show")
	graphHubsCmd.Flags().Int("top", 10, "number of hubs to list")
	graphOrphansCmd.Flags().String("type", "", `only list "tag" or "file" nodes`)
	graphRecommendCmd.Flags().Int("top", 5, "number of suggestions")

	graphCmd.AddCommand(graphGenerateCmd, graphShowCmd, graphHubsCmd, graphOrphansCmd, graphClusterCmd, graphRecommendCmd, graphExportCmd)
}
