package main

import (
	"fmt"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/filemap/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		name := args[0]
		existing, err := s.GetTag(ctx, &store.FindTag{Name: &name})
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.Errorf("tag %q already exists", name)
		}

		categoryName, _ := cmd.Flags().GetString("category")
		if categoryName == "" {
			categoryName = "uncategorized"
		}
		category, err := s.GetCategory(ctx, &store.FindCategory{Name: &categoryName})
		if err != nil {
			return err
		}
		if category == nil {
			return errors.Errorf("category %q not found", categoryName)
		}

		description, _ := cmd.Flags().GetString("description")
		color, _ := cmd.Flags().GetString("color")
		tag, err := s.CreateTag(ctx, &store.Tag{
			UID:         shortuuid.New(),
			Name:        name,
			CategoryUID: category.UID,
			Description: description,
			Color:       color,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created tag %s (%s) in %s\n", tag.Name, tag.UID, category.Name)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		find := &store.FindTag{}
		if categoryName, _ := cmd.Flags().GetString("category"); categoryName != "" {
			category, err := s.GetCategory(ctx, &store.FindCategory{Name: &categoryName})
			if err != nil {
				return err
			}
			if category == nil {
				return errors.Errorf("category %q not found", categoryName)
			}
			find.CategoryUID = &category.UID
		}

		tags, err := s.ListTags(ctx, find)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			fmt.Printf("%s  %-20s  used %d time(s)\n", tag.UID, tag.Name, tag.UsageCount)
		}
		fmt.Printf("%d tag(s)\n", len(tags))
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <tag>",
	Short: "Delete a tag and detach it from all files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		tag, err := resolveTag(ctx, s, args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteTag(ctx, &store.DeleteTag{UID: tag.UID}); err != nil {
			return err
		}
		fmt.Printf("deleted tag %s\n", tag.Name)
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage tag categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		name := args[0]
		existing, err := s.GetCategory(ctx, &store.FindCategory{Name: &name})
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.Errorf("category %q already exists", name)
		}

		description, _ := cmd.Flags().GetString("description")
		exclusive, _ := cmd.Flags().GetBool("exclusive")
		color, _ := cmd.Flags().GetString("color")
		category, err := s.CreateCategory(ctx, &store.Category{
			UID:               shortuuid.New(),
			Name:              name,
			Description:       description,
			MutuallyExclusive: exclusive,
			Color:             color,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created category %s (%s)\n", category.Name, category.UID)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		categories, err := s.ListCategories(ctx, &store.FindCategory{})
		if err != nil {
			return err
		}
		for _, category := range categories {
			marker := " "
			if category.MutuallyExclusive {
				marker = "!"
			}
			fmt.Printf("%s %s  %-16s  %s\n", marker, category.UID, category.Name, category.Description)
		}
		return nil
	},
}

func init() {
	tagAddCmd.Flags().String("category", "", "category name (defaults to uncategorized)")
	tagAddCmd.Flags().String("description", "", "tag description")
	tagAddCmd.Flags().String("color", "", "display color")
	tagListCmd.Flags().String("category", "", "only list tags in this category")
	categoryAddCmd.Flags().String("description", "", "category description")
	categoryAddCmd.Flags().Bool("exclusive", false, "a file may carry at most one tag from this category")
	categoryAddCmd.Flags().String("color", "", "display color")

	tagCmd.AddCommand(tagAddCmd, tagListCmd, tagRmCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)
}
