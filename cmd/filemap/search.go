package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrygo/filemap/plugin/graph"
	"github.com/hrygo/filemap/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over file names and content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := s.SearchFiles(ctx, &store.SearchFilesOptions{Query: args[0], Limit: limit})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, result := range results {
			fmt.Printf("%6.2f  %-30s  %s\n", result.Score, result.File.Name, result.File.Path)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workspace and graph statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		files, err := s.ListFiles(ctx, &store.FindFile{})
		if err != nil {
			return err
		}
		tags, err := s.ListTags(ctx, &store.FindTag{})
		if err != nil {
			return err
		}
		categories, err := s.ListCategories(ctx, &store.FindCategory{})
		if err != nil {
			return err
		}

		fmt.Printf("files:      %d\n", len(files))
		fmt.Printf("tags:       %d\n", len(tags))
		fmt.Printf("categories: %d\n", len(categories))

		g, err := graph.NewBuilder(s).Build(ctx, graph.ModeFull)
		if err != nil {
			return err
		}
		fmt.Println()
		printStats(g.Stats())
		return nil
	},
}

func printStats(stats graph.Stats) {
	fmt.Printf("total_nodes:          %d\n", stats.TotalNodes)
	fmt.Printf("total_edges:          %d\n", stats.TotalEdges)
	fmt.Printf("tag_nodes:            %d\n", stats.TagNodes)
	fmt.Printf("file_nodes:           %d\n", stats.FileNodes)
	fmt.Printf("avg_degree:           %.2f\n", stats.AvgDegree)
	fmt.Printf("density:              %.3f\n", stats.Density)
	fmt.Printf("connected_components: %d\n", stats.ConnectedComponents)
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
}
