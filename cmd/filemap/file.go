package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hrygo/filemap/plugin/ingest"
	"github.com/hrygo/filemap/store"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage file records",
}

var fileAddCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Import files or directories into the workspace",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, p, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		managed, _ := cmd.Flags().GetBool("managed")
		tagNames, _ := cmd.Flags().GetStringSlice("tag")

		tagUIDs := make([]string, 0, len(tagNames))
		for _, name := range tagNames {
			tag, err := ensureTag(ctx, s, name)
			if err != nil {
				return err
			}
			tagUIDs = append(tagUIDs, tag.UID)
		}

		in := ingest.NewIngestor(s, p)
		opts := ingest.Options{Managed: managed, TagUIDs: tagUIDs}
		for _, path := range args {
			files, err := importPath(ctx, in, path, opts)
			if err != nil {
				return err
			}
			for _, file := range files {
				fmt.Printf("added %s (%s)\n", file.Name, file.UID)
			}
		}
		return nil
	},
}

var fileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List file records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		s, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		find := &store.FindFile{}
		if tagName, _ := cmd.Flags().GetString("tag"); tagName != "" {
			tag, err := resolveTag(ctx, s, tagName)
			if err != nil {
				return err
			}
			find.TagUID = &tag.UID
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			find.Limit = &limit
		}

		files, err := s.ListFiles(ctx, find)
		if err != nil {
			return err
		}
		for _, file := range files {
			fmt.Printf("%s  %-30s  %8d  %s\n", file.UID, file.Name, file.Size, file.Path)
		}
		fmt.Printf("%d file(s)\n", len(files))
		return nil
	},
}

var fileShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show a file record with its tags",
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

		fmt.Printf("uid:      %s\n", file.UID)
		fmt.Printf("name:     %s\n", file.Name)
		fmt.Printf("path:     %s\n", file.Path)
		fmt.Printf("managed:  %v\n", file.Managed)
		fmt.Printf("size:     %d\n", file.Size)
		fmt.Printf("mime:     %s\n", file.MimeType)
		fmt.Printf("hash:     %s\n", file.Hash)
		if file.Notes != "" {
			fmt.Printf("notes:    %s\n", file.Notes)
		}
		fmt.Printf("tags:    ")
		for _, tagUID := range file.Tags {
			uid := tagUID
			if tag, err := s.GetTag(ctx, &store.FindTag{UID: &uid}); err == nil && tag != nil {
				fmt.Printf(" %s", tag.Name)
			} else {
				fmt.Printf(" %s", tagUID)
			}
		}
		fmt.Println()
		return nil
	},
}

var fileRmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Remove a file record",
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
		if err := s.DeleteFile(ctx, &store.DeleteFile{UID: file.UID}); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", file.Name)
		return nil
	},
}

var fileTagCmd = &cobra.Command{
	Use:   "tag <file> <tag>...",
	Short: "Attach tags to a file, creating unknown tags",
	Args:  cobra.MinimumNArgs(2),
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
		for _, name := range args[1:] {
			tag, err := ensureTag(ctx, s, name)
			if err != nil {
				return err
			}
			if err := s.AddFileTag(ctx, file.UID, tag.UID); err != nil {
				return err
			}
			fmt.Printf("tagged %s with %s\n", file.Name, tag.Name)
		}
		return nil
	},
}

var fileUntagCmd = &cobra.Command{
	Use:   "untag <file> <tag>...",
	Short: "Detach tags from a file",
	Args:  cobra.MinimumNArgs(2),
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
		for _, name := range args[1:] {
			tag, err := resolveTag(ctx, s, name)
			if err != nil {
				return err
			}
			if err := s.RemoveFileTag(ctx, file.UID, tag.UID); err != nil {
				return err
			}
			fmt.Printf("untagged %s from %s\n", tag.Name, file.Name)
		}
		return nil
	},
}

func init() {
	fileAddCmd.Flags().Bool("managed", false, "copy the file into the managed directory")
	fileAddCmd.Flags().StringSlice("tag", nil, "tags to attach to the imported files")
	fileListCmd.Flags().String("tag", "", "only list files carrying this tag")
	fileListCmd.Flags().Int("limit", 0, "maximum number of files to list")

	fileCmd.AddCommand(fileAddCmd, fileListCmd, fileShowCmd, fileRmCmd, fileTagCmd, fileUntagCmd)
}

// importPath imports a file or, recursively, a directory.
func importPath(ctx context.Context, in *ingest.Ingestor, path string, opts ingest.Options) ([]*store.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", path)
	}
	if info.IsDir() {
		return in.ImportDirectory(ctx, path, opts)
	}
	file, err := in.Import(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return []*store.File{file}, nil
}

// resolveFile finds a file by UID, falling back to its name.
func resolveFile(ctx context.Context, s *store.Store, ref string) (*store.File, error) {
	file, err := s.GetFile(ctx, &store.FindFile{UID: &ref})
	if err != nil {
		return nil, err
	}
	if file == nil {
		file, err = s.GetFile(ctx, &store.FindFile{Name: &ref})
		if err != nil {
			return nil, err
		}
	}
	if file == nil {
		return nil, errors.Errorf("file %q not found", ref)
	}
	return file, nil
}

// resolveTag finds a tag by name, falling back to its UID.
func resolveTag(ctx context.Context, s *store.Store, ref string) (*store.Tag, error) {
	tag, err := s.GetTag(ctx, &store.FindTag{Name: &ref})
	if err != nil {
		return nil, err
	}
	if tag == nil {
		tag, err = s.GetTag(ctx, &store.FindTag{UID: &ref})
		if err != nil {
			return nil, err
		}
	}
	if tag == nil {
		return nil, errors.Errorf("tag %q not found", ref)
	}
	return tag, nil
}

// ensureTag resolves a tag by name, creating it in the uncategorized
// category when missing.
func ensureTag(ctx context.Context, s *store.Store, name string) (*store.Tag, error) {
	tag, err := s.GetTag(ctx, &store.FindTag{Name: &name})
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return tag, nil
	}

	categoryUID := ""
	uncategorized := "uncategorized"
	if category, err := s.GetCategory(ctx, &store.FindCategory{Name: &uncategorized}); err == nil && category != nil {
		categoryUID = category.UID
	}
	return s.CreateTag(ctx, &store.Tag{
		UID:         shortuuid.New(),
		Name:        name,
		CategoryUID: categoryUID,
	})
}
